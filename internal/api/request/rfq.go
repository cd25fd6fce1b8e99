package request

import "labequip/storefront/internal/domain"

type AddRFQItem struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

// SubmitQuote is the contact form. Line items come from the session cart, not the body.
type SubmitQuote struct {
	Name            string `json:"name" validate:"required,max=255"`
	Company         string `json:"company" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=32"`
	City            string `json:"city" validate:"required,oneof=tehran mashhad isfahan tabriz shiraz other"`
	Equipment       string `json:"equipment" validate:"max=2000"`
	Timeline        string `json:"timeline" validate:"omitempty,oneof=urgent 1month flexible research"`
	Requirements    string `json:"requirements" validate:"max=4000"`
	PrivacyAccepted bool   `json:"privacy_accepted" validate:"required"`
}

func (q SubmitQuote) Lead(items []domain.LineItem, lang domain.Language) *domain.Lead {
	return &domain.Lead{
		Name:         q.Name,
		Company:      q.Company,
		Email:        q.Email,
		City:         q.City,
		Phone:        q.Phone,
		Equipment:    q.Equipment,
		Items:        items,
		Timeline:     q.Timeline,
		Requirements: q.Requirements,
		Language:     lang,
	}
}
