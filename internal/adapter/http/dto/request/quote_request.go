package request

import (
	"errors"
	"strings"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmountFilter = errors.New("invalid amount filter")
	ErrInvalidDateFilter   = errors.New("invalid date filter, expected YYYY-MM-DD")
)

type ClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// CreateQuoteRequest is the body of POST /v1/quotes. Status is accepted and
// ignored: new quotes always start pending.
type CreateQuoteRequest struct {
	SellerID    string           `json:"seller_id" validate:"required"`
	Client      ClientRequest    `json:"client"`
	Description string           `json:"description" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Status      string           `json:"status"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		SellerID: r.SellerID,
		Client: entities.Client{
			Name:  r.Client.Name,
			Email: r.Client.Email,
			Phone: r.Client.Phone,
		},
		Description: r.Description,
		Amount:      r.Amount,
		Status:      r.Status,
	}
}

// QuoteListQuery carries the list filters as query parameters. Write
// endpoints accept the same parameters to shape the listing they return.
type QuoteListQuery struct {
	Client    string `form:"client"`
	SellerID  string `form:"seller_id"`
	AmountMin string `form:"amount_min"`
	AmountMax string `form:"amount_max"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

func (q QuoteListQuery) ToInput() (usecase.ListQuotesInput, error) {
	in := usecase.ListQuotesInput{
		ClientName: strings.TrimSpace(q.Client),
		SellerID:   strings.TrimSpace(q.SellerID),
	}
	var err error
	if in.AmountMin, err = parseAmount(q.AmountMin); err != nil {
		return usecase.ListQuotesInput{}, err
	}
	if in.AmountMax, err = parseAmount(q.AmountMax); err != nil {
		return usecase.ListQuotesInput{}, err
	}
	if in.DateFrom, err = parseDate(q.DateFrom); err != nil {
		return usecase.ListQuotesInput{}, err
	}
	if in.DateTo, err = parseDate(q.DateTo); err != nil {
		return usecase.ListQuotesInput{}, err
	}
	return in, nil
}

func parseAmount(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrInvalidAmountFilter
	}
	return &d, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, ErrInvalidDateFilter
	}
	return &t, nil
}
