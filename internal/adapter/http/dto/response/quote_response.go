package response

import (
	"time"

	"presupuestos_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ClientResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type QuoteResponse struct {
	ID             string          `json:"id"`
	SequenceNumber string          `json:"sequence_number"`
	CreatedAt      time.Time       `json:"created_at"`
	SellerID       string          `json:"seller_id"`
	SellerName     string          `json:"seller_name"`
	Client         ClientResponse  `json:"client"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		SequenceNumber: q.SequenceNumber,
		CreatedAt:      q.CreatedAt,
		SellerID:       q.SellerID,
		SellerName:     q.SellerName,
		Client: ClientResponse{
			Name:  q.Client.Name,
			Email: q.Client.Email,
			Phone: q.Client.Phone,
		},
		Description: q.Description,
		Amount:      q.Amount,
		Status:      string(q.Status),
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

// QuoteWriteResponse answers create and status changes with the written quote
// and the refreshed listing. RefreshError is set when the write succeeded but
// the listing could not be read back.
type QuoteWriteResponse struct {
	Quote        QuoteResponse   `json:"quote"`
	Quotes       []QuoteResponse `json:"quotes"`
	RefreshError string          `json:"refresh_error,omitempty"`
}
