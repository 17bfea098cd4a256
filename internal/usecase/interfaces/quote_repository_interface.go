package interfaces

import (
	"context"
	"time"

	"presupuestos_service/internal/domain/entities"
)

// IQuoteRepository persists quotes in the "presupuestos" collection.
//
// Lookups and updates return a zero Quote (empty ID) when the id is unknown.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error)
	CountBySellerBetween(ctx context.Context, sellerID string, from, to time.Time) (int64, error)
}
