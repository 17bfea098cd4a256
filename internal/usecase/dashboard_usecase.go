package usecase

import (
	"context"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Stats summarises a quote set. The counts in ByStatus and in BySeller each
// add up to Total.
type Stats struct {
	Total       int               `json:"total"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	ByStatus    StatusCounts      `json:"by_status"`
	BySeller    map[string]int    `json:"by_seller"`
	SellerNames map[string]string `json:"seller_names"`
}

// SellerKey groups a quote by seller. It is the seller id, or the seller name
// when the quote has no seller id. Mixing the two key kinds is inconsistent
// and only exists for quotes written without a seller id.
func SellerKey(q entities.Quote) string {
	if q.SellerID != "" {
		return q.SellerID
	}
	return q.SellerName
}

// AggregateQuotes computes Stats over quotes. It does not attach seller names.
func AggregateQuotes(quotes []entities.Quote) Stats {
	s := Stats{
		Total:       len(quotes),
		TotalAmount: decimal.Zero,
		BySeller:    make(map[string]int),
		SellerNames: make(map[string]string),
	}
	for _, q := range quotes {
		s.TotalAmount = s.TotalAmount.Add(q.Amount)
		switch q.Status {
		case entities.QuoteStatusPending:
			s.ByStatus.Pending++
		case entities.QuoteStatusApproved:
			s.ByStatus.Approved++
		case entities.QuoteStatusRejected:
			s.ByStatus.Rejected++
		}
		s.BySeller[SellerKey(q)]++
	}
	return s
}

type IDashboardUseCase interface {
	Stats(ctx context.Context) (Stats, error)
}

type DashboardUseCase struct {
	quotes  interfaces.IQuoteRepository
	sellers interfaces.ISellerRepository
	logger  *zap.Logger
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(quotes interfaces.IQuoteRepository, sellers interfaces.ISellerRepository, logger *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{quotes: quotes, sellers: sellers, logger: logger}
}

// Stats reads every quote and the seller directory concurrently. Any read
// failure fails the whole call; partial stats are never returned.
func (u *DashboardUseCase) Stats(ctx context.Context) (Stats, error) {
	ctx, span := tracer.Start(ctx, "DashboardUseCase.Stats")
	defer span.End()

	var (
		quotes  []entities.Quote
		sellers []entities.Seller
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quotes, err = u.quotes.List(gctx, entities.QuoteFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		sellers, err = u.sellers.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("load dashboard data", zap.Error(err))
		return Stats{}, failSpan(span, err)
	}

	stats := AggregateQuotes(quotes)
	names := make(map[string]string, len(sellers))
	for _, s := range sellers {
		names[s.ID] = s.Name
	}
	for key := range stats.BySeller {
		if name, ok := names[key]; ok {
			stats.SellerNames[key] = name
		} else {
			stats.SellerNames[key] = key
		}
	}
	return stats, nil
}
