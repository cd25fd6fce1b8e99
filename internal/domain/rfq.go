package domain

// LineItem is a product marked by a visitor for quotation
type LineItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Grade string `json:"grade"`
}
