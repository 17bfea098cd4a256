package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrSequenceUnavailable is returned when the ordinal for a new quote cannot
// be determined. Creation fails rather than guessing an ordinal.
var ErrSequenceUnavailable = errors.New("sequence number unavailable")

// ErrSequenceConflict is returned when another creation for the same seller
// and day took the ordinal first. Nothing is written and it is not retried.
var ErrSequenceConflict = errors.New("sequence number taken concurrently")

// ISequenceGenerator numbers a quote with "DDMMYY" + sellerID + NN, where NN
// is the 1-based ordinal of the quote among the seller's quotes of that day,
// and persists it. An ordinal is consumed only by a quote that was written.
type ISequenceGenerator interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
}

// FormatSequenceNumber renders day (already in the business time zone),
// sellerID and ordinal. Ordinals above 99 widen to three digits.
func FormatSequenceNumber(day time.Time, sellerID string, ordinal int64) string {
	return fmt.Sprintf("%s%s%02d", day.Format("020106"), sellerID, ordinal)
}

// CountingSequenceGenerator derives the ordinal from the number of quotes the
// seller already has today. Two creations racing on the same seller and day
// can read the same count and produce the same number.
type CountingSequenceGenerator struct {
	quotes  interfaces.IQuoteRepository
	loc     *time.Location
	metrics interfaces.IMetrics
	logger  *zap.Logger
}

var _ ISequenceGenerator = (*CountingSequenceGenerator)(nil)

func NewCountingSequenceGenerator(quotes interfaces.IQuoteRepository, loc *time.Location, metrics interfaces.IMetrics, logger *zap.Logger) *CountingSequenceGenerator {
	return &CountingSequenceGenerator{quotes: quotes, loc: orUTC(loc), metrics: metrics, logger: logger}
}

func (g *CountingSequenceGenerator) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	ctx, span := tracer.Start(ctx, "SequenceGenerator.Count")
	defer span.End()
	span.SetAttributes(attribute.String("seller.id", q.SellerID))

	local := q.CreatedAt.In(g.loc)
	from, to := entities.DayRange(local)
	n, err := g.quotes.CountBySellerBetween(ctx, q.SellerID, from, to)
	if err != nil {
		g.metrics.IncrSequenceFailure("count")
		g.logger.Error("count same-day quotes",
			zap.String("seller_id", q.SellerID),
			zap.String("hint", "check that the seller_id/created_at index exists"),
			zap.Error(err),
		)
		return entities.Quote{}, fmt.Errorf("%w: counting quotes of seller %s: %w", ErrSequenceUnavailable, q.SellerID, err)
	}
	q.SequenceNumber = FormatSequenceNumber(local, q.SellerID, n+1)
	return g.quotes.Create(ctx, q)
}

// CounterSequenceGenerator reads the per-seller, per-day counter and writes
// the quote together with the counter bump. Concurrent creations never share
// a number, and a failed write leaves the counter where it was.
type CounterSequenceGenerator struct {
	counter interfaces.IQuoteCounter
	loc     *time.Location
	metrics interfaces.IMetrics
	logger  *zap.Logger
}

var _ ISequenceGenerator = (*CounterSequenceGenerator)(nil)

func NewCounterSequenceGenerator(counter interfaces.IQuoteCounter, loc *time.Location, metrics interfaces.IMetrics, logger *zap.Logger) *CounterSequenceGenerator {
	return &CounterSequenceGenerator{counter: counter, loc: orUTC(loc), metrics: metrics, logger: logger}
}

func (g *CounterSequenceGenerator) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	ctx, span := tracer.Start(ctx, "SequenceGenerator.Counter")
	defer span.End()
	span.SetAttributes(attribute.String("seller.id", q.SellerID))

	local := q.CreatedAt.In(g.loc)
	day := local.Format(time.DateOnly)
	last, err := g.counter.Current(ctx, q.SellerID, day)
	if err != nil {
		g.metrics.IncrSequenceFailure("counter")
		g.logger.Error("read quote counter",
			zap.String("seller_id", q.SellerID),
			zap.String("hint", "check that the counters table exists"),
			zap.Error(err),
		)
		return entities.Quote{}, fmt.Errorf("%w: counter of seller %s: %w", ErrSequenceUnavailable, q.SellerID, err)
	}
	if last < 0 {
		return entities.Quote{}, fmt.Errorf("%w: counter of seller %s holds %d", ErrSequenceUnavailable, q.SellerID, last)
	}

	q.SequenceNumber = FormatSequenceNumber(local, q.SellerID, last+1)
	created, err := g.counter.CreateNumbered(ctx, q, day, last)
	if errors.Is(err, interfaces.ErrCounterConflict) {
		g.metrics.IncrSequenceFailure("counter")
		g.logger.Warn("quote counter moved during create",
			zap.String("seller_id", q.SellerID),
			zap.String("sequence_number", q.SequenceNumber),
		)
		return entities.Quote{}, fmt.Errorf("%w: seller %s: %w", ErrSequenceConflict, q.SellerID, err)
	}
	return created, err
}

// NewSequenceGenerator picks the strategy named by QUOTE_NUMBERING.
func NewSequenceGenerator(
	strategy string,
	quotes interfaces.IQuoteRepository,
	counter interfaces.IQuoteCounter,
	loc *time.Location,
	metrics interfaces.IMetrics,
	logger *zap.Logger,
) (ISequenceGenerator, error) {
	switch strings.ToLower(strategy) {
	case "count":
		return NewCountingSequenceGenerator(quotes, loc, metrics, logger), nil
	case "counter", "":
		return NewCounterSequenceGenerator(counter, loc, metrics, logger), nil
	default:
		return nil, fmt.Errorf("unknown quote numbering strategy %q", strategy)
	}
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
