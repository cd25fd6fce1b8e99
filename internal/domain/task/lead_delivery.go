package task

import "labequip/storefront/internal/domain"

type LeadDeliveryTask struct {
	Lead domain.Lead `json:"lead"`
}

func (t *LeadDeliveryTask) TaskType() string {
	return "LeadDeliveryTask"
}

func (t *LeadDeliveryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
