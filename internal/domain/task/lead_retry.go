package task

import "labequip/storefront/internal/domain"

type LeadRetryTask struct {
	Lead       domain.Lead `json:"lead"`
	RetryCount int         `json:"retry_count"` // Number of delivery attempts made so far
	Error      string      `json:"error"`       // Error message from the last failure
}

func (t *LeadRetryTask) TaskType() string {
	return "LeadRetryTask"
}

func (t *LeadRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
