package interfaces

import (
	"context"
	"errors"

	"presupuestos_service/internal/domain/entities"
)

// ErrCounterConflict reports that the counter moved between Current and
// CreateNumbered.
var ErrCounterConflict = errors.New("quote counter changed concurrently")

// IQuoteCounter tracks the last ordinal handed out per seller and day. The
// counter only advances together with the quote that consumes the ordinal.
type IQuoteCounter interface {
	// Current returns the last ordinal written for sellerID on day, 0 if none.
	Current(ctx context.Context, sellerID, day string) (int64, error)
	// CreateNumbered persists q and moves the counter from previous to
	// previous+1 in one write. It fails with ErrCounterConflict when the
	// counter no longer holds previous.
	CreateNumbered(ctx context.Context, q entities.Quote, day string, previous int64) (entities.Quote, error)
}
