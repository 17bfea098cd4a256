package entities

// Seller ("vendedor") originates quotes.
type Seller struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
