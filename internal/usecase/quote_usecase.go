package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("presupuestos/usecase")

var (
	ErrInvalidSellerID    = errors.New("invalid seller_id")
	ErrInvalidClientName  = errors.New("invalid client name")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
	ErrInvalidStatus      = errors.New("invalid target status")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrStatusUnchanged    = errors.New("quote already has that status")
	// ErrListingRefresh is returned together with a written quote when the
	// write succeeded but the listing that follows it failed.
	ErrListingRefresh = errors.New("listing refresh failed")
)

// CreateQuoteInput carries a new quote as entered. Status is accepted for
// compatibility and ignored; new quotes are always pending.
type CreateQuoteInput struct {
	SellerID    string
	Client      entities.Client
	Description string
	Amount      *decimal.Decimal
	Status      string
}

// ListQuotesInput holds the listing filters. DateFrom and DateTo are calendar
// dates: only their year, month and day are used, read in the business time
// zone.
type ListQuotesInput struct {
	ClientName string
	SellerID   string
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	DateFrom   *time.Time
	DateTo     *time.Time
}

// QuoteWriteResult is the written quote plus the listing re-read after the
// write, under the caller's filters.
type QuoteWriteResult struct {
	Quote  entities.Quote
	Quotes []entities.Quote
}

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, in CreateQuoteInput, refresh ListQuotesInput) (QuoteWriteResult, error)
	ListQuotes(ctx context.Context, in ListQuotesInput) ([]entities.Quote, error)
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
	ApproveQuote(ctx context.Context, id string, refresh ListQuotesInput) (QuoteWriteResult, error)
	RejectQuote(ctx context.Context, id string, refresh ListQuotesInput) (QuoteWriteResult, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus, refresh ListQuotesInput) (QuoteWriteResult, error)
}

type QuoteUseCase struct {
	quotes   interfaces.IQuoteRepository
	sellers  interfaces.ISellerRepository
	sequence ISequenceGenerator
	loc      *time.Location
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	sellers interfaces.ISellerRepository,
	sequence ISequenceGenerator,
	loc *time.Location,
	metrics interfaces.IMetrics,
	logger *zap.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{
		quotes:   quotes,
		sellers:  sellers,
		sequence: sequence,
		loc:      orUTC(loc),
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, in CreateQuoteInput, refresh ListQuotesInput) (QuoteWriteResult, error) {
	ctx, span := tracer.Start(ctx, "QuoteUseCase.CreateQuote")
	defer span.End()

	q, err := u.newQuote(in)
	if err != nil {
		return QuoteWriteResult{}, err
	}
	span.SetAttributes(attribute.String("seller.id", q.SellerID))

	seller, err := u.sellers.GetByID(ctx, q.SellerID)
	if err != nil {
		return QuoteWriteResult{}, failSpan(span, fmt.Errorf("resolve seller: %w", err))
	}
	if seller.ID == "" {
		u.logger.Warn("quote created for unknown seller", zap.String("seller_id", q.SellerID))
	}
	q.SellerName = seller.Name

	created, err := u.sequence.Create(ctx, q)
	if err != nil {
		return QuoteWriteResult{}, failSpan(span, err)
	}
	u.metrics.IncrQuoteCreated()
	u.logger.Info("quote created",
		zap.String("quote_id", created.ID),
		zap.String("sequence_number", created.SequenceNumber),
		zap.String("seller_id", created.SellerID),
	)

	return u.withRefresh(ctx, created, refresh)
}

func (u *QuoteUseCase) newQuote(in CreateQuoteInput) (entities.Quote, error) {
	sellerID := strings.TrimSpace(in.SellerID)
	if sellerID == "" {
		return entities.Quote{}, ErrInvalidSellerID
	}
	client := entities.Client{
		Name:  strings.TrimSpace(in.Client.Name),
		Email: strings.TrimSpace(in.Client.Email),
		Phone: strings.TrimSpace(in.Client.Phone),
	}
	if client.Name == "" {
		return entities.Quote{}, ErrInvalidClientName
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return entities.Quote{}, ErrInvalidDescription
	}
	if in.Amount == nil || in.Amount.IsNegative() {
		return entities.Quote{}, ErrInvalidAmount
	}

	return entities.Quote{
		ID:          uuid.NewString(),
		CreatedAt:   u.now().UTC(),
		SellerID:    sellerID,
		Client:      client,
		Description: description,
		Amount:      *in.Amount,
		Status:      entities.QuoteStatusPending,
	}, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, in ListQuotesInput) ([]entities.Quote, error) {
	ctx, span := tracer.Start(ctx, "QuoteUseCase.ListQuotes")
	defer span.End()

	quotes, err := u.quotes.List(ctx, u.filter(in))
	if err != nil {
		return nil, failSpan(span, err)
	}
	span.SetAttributes(attribute.Int("quotes.count", len(quotes)))
	return quotes, nil
}

func (u *QuoteUseCase) filter(in ListQuotesInput) entities.QuoteFilter {
	f := entities.QuoteFilter{
		ClientName: strings.TrimSpace(in.ClientName),
		SellerID:   strings.TrimSpace(in.SellerID),
		AmountMin:  in.AmountMin,
		AmountMax:  in.AmountMax,
	}
	if in.DateFrom != nil {
		start, _ := entities.DayRange(u.calendarDay(*in.DateFrom))
		f.CreatedFrom = &start
	}
	if in.DateTo != nil {
		_, end := entities.DayRange(u.calendarDay(*in.DateTo))
		f.CreatedTo = &end
	}
	return f
}

func (u *QuoteUseCase) calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, u.loc)
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) ApproveQuote(ctx context.Context, id string, refresh ListQuotesInput) (QuoteWriteResult, error) {
	return u.UpdateStatus(ctx, id, entities.QuoteStatusApproved, refresh)
}

func (u *QuoteUseCase) RejectQuote(ctx context.Context, id string, refresh ListQuotesInput) (QuoteWriteResult, error) {
	return u.UpdateStatus(ctx, id, entities.QuoteStatusRejected, refresh)
}

// UpdateStatus moves a quote to approved or rejected. Any transition between
// the three statuses is allowed except to the status the quote already has.
func (u *QuoteUseCase) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus, refresh ListQuotesInput) (QuoteWriteResult, error) {
	ctx, span := tracer.Start(ctx, "QuoteUseCase.UpdateStatus")
	defer span.End()

	if status != entities.QuoteStatusApproved && status != entities.QuoteStatusRejected {
		return QuoteWriteResult{}, ErrInvalidStatus
	}
	current, err := u.GetQuote(ctx, id)
	if err != nil {
		return QuoteWriteResult{}, failSpan(span, err)
	}
	span.SetAttributes(attribute.String("quote.id", current.ID), attribute.String("quote.status", string(status)))
	if current.Status == status {
		return QuoteWriteResult{}, ErrStatusUnchanged
	}

	updated, err := u.quotes.UpdateStatus(ctx, current.ID, status)
	if err != nil {
		return QuoteWriteResult{}, failSpan(span, err)
	}
	if updated.ID == "" {
		return QuoteWriteResult{}, ErrQuoteNotFound
	}
	u.metrics.IncrStatusChange(string(status))
	u.logger.Info("quote status updated",
		zap.String("quote_id", updated.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(updated.Status)),
	)

	return u.withRefresh(ctx, updated, refresh)
}

func (u *QuoteUseCase) withRefresh(ctx context.Context, q entities.Quote, refresh ListQuotesInput) (QuoteWriteResult, error) {
	quotes, err := u.ListQuotes(ctx, refresh)
	if err != nil {
		u.logger.Error("refresh quote listing after write", zap.String("quote_id", q.ID), zap.Error(err))
		return QuoteWriteResult{Quote: q}, fmt.Errorf("%w: %w", ErrListingRefresh, err)
	}
	return QuoteWriteResult{Quote: q, Quotes: quotes}, nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
