package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// QuoteStatuses lists every valid status in display order.
var QuoteStatuses = []QuoteStatus{QuoteStatusPending, QuoteStatusApproved, QuoteStatusRejected}

var legacyQuoteStatuses = map[string]QuoteStatus{
	"pendiente": QuoteStatusPending,
	"aprobado":  QuoteStatusApproved,
	"rechazado": QuoteStatusRejected,
}

// ParseQuoteStatus accepts the canonical values and the legacy Spanish ones
// still present in older documents.
func ParseQuoteStatus(s string) (QuoteStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch QuoteStatus(v) {
	case QuoteStatusPending, QuoteStatusApproved, QuoteStatusRejected:
		return QuoteStatus(v), true
	}
	st, ok := legacyQuoteStatuses[v]
	return st, ok
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

// Client is owned by its Quote and has no identity of its own.
type Client struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Quote is a priced proposal ("presupuesto").
//
// SellerName is copied from the seller at creation time and never refreshed,
// so it may drift from the seller's current name.
type Quote struct {
	ID             string          `json:"id"`
	SequenceNumber string          `json:"sequence_number"`
	CreatedAt      time.Time       `json:"created_at"`
	SellerID       string          `json:"seller_id"`
	SellerName     string          `json:"seller_name"`
	Client         Client          `json:"client"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Status         QuoteStatus     `json:"status"`
}

// ErrInvalidQuote marks a quote whose stored shape is broken.
var ErrInvalidQuote = errors.New("invalid quote")

// Validate checks the shape every store requires before a write. A quote
// without a seller is allowed; it surfaces as "Desconocido".
func (q Quote) Validate() error {
	switch {
	case q.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidQuote)
	case !q.Status.Valid():
		return fmt.Errorf("%w: %q: unknown status %q", ErrInvalidQuote, q.ID, q.Status)
	case q.Amount.IsNegative():
		return fmt.Errorf("%w: %q: negative amount", ErrInvalidQuote, q.ID)
	case q.CreatedAt.IsZero():
		return fmt.Errorf("%w: %q: missing created_at", ErrInvalidQuote, q.ID)
	}
	return nil
}

// QuoteFilter holds the optional list predicates. Unset fields do not
// constrain the result; set fields are ANDed.
type QuoteFilter struct {
	ClientName  string
	SellerID    string
	AmountMin   *decimal.Decimal
	AmountMax   *decimal.Decimal
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (f QuoteFilter) IsEmpty() bool {
	return f.ClientName == "" && f.SellerID == "" &&
		f.AmountMin == nil && f.AmountMax == nil &&
		f.CreatedFrom == nil && f.CreatedTo == nil
}

// Matches reports whether q satisfies every set predicate. Bounds are inclusive.
func (f QuoteFilter) Matches(q Quote) bool {
	if f.ClientName != "" && q.Client.Name != f.ClientName {
		return false
	}
	if f.SellerID != "" && q.SellerID != f.SellerID {
		return false
	}
	if f.AmountMin != nil && q.Amount.LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && q.Amount.GreaterThan(*f.AmountMax) {
		return false
	}
	if f.CreatedFrom != nil && q.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && q.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

// DayRange returns the first and last millisecond of day's calendar date in
// day's location.
func DayRange(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
