package domain

import "time"

type LeadStatus string

const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusDelivered LeadStatus = "delivered"
	LeadStatusFailed    LeadStatus = "failed"
)

// Lead is a submitted request-for-quote form
type Lead struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Company      string     `json:"company"`
	Email        string     `json:"email"`
	City         string     `json:"city"`
	Phone        string     `json:"phone"`
	Equipment    string     `json:"equipment,omitempty"` // Free text when the cart is empty
	Items        []LineItem `json:"items,omitempty"`
	Timeline     string     `json:"timeline,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Language     Language   `json:"language"`
	SubmittedAt  time.Time  `json:"submitted_at"`
}
