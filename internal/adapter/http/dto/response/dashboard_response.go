package response

import (
	"sort"

	"presupuestos_service/internal/usecase"

	"github.com/shopspring/decimal"
)

type SellerCountResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	Total       int                   `json:"total"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Pending     int                   `json:"pending"`
	Approved    int                   `json:"approved"`
	Rejected    int                   `json:"rejected"`
	BySeller    []SellerCountResponse `json:"by_seller"`
}

// FromStats orders sellers by count, then key.
func FromStats(s usecase.Stats) StatsResponse {
	sellers := make([]SellerCountResponse, 0, len(s.BySeller))
	for key, n := range s.BySeller {
		name := s.SellerNames[key]
		if name == "" {
			name = key
		}
		sellers = append(sellers, SellerCountResponse{Key: key, Name: name, Count: n})
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].Count != sellers[j].Count {
			return sellers[i].Count > sellers[j].Count
		}
		return sellers[i].Key < sellers[j].Key
	})

	return StatsResponse{
		Total:       s.Total,
		TotalAmount: s.TotalAmount,
		Pending:     s.ByStatus.Pending,
		Approved:    s.ByStatus.Approved,
		Rejected:    s.ByStatus.Rejected,
		BySeller:    sellers,
	}
}
