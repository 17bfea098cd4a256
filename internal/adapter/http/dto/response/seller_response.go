package response

import "presupuestos_service/internal/domain/entities"

type SellerResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromSellers(sellers []entities.Seller) []SellerResponse {
	out := make([]SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, SellerResponse{ID: s.ID, Code: s.Code, Name: s.Name, Email: s.Email})
	}
	return out
}
