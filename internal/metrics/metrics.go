package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"labequip/storefront/internal/domain"
)

// Delivery results recorded by LeadDeliveries
const (
	ResultDelivered = "delivered"
	ResultRetried   = "retried"
	ResultFailed    = "failed"
)

var (
	CartChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_rfq_cart_changes_total",
			Help: "Total number of RFQ cart mutations",
		},
	)

	CartSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_rfq_cart_size",
			Help:    "Number of line items in a cart after a mutation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	LeadsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_leads_submitted_total",
			Help: "Total number of accepted quote requests",
		},
	)

	LeadDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_lead_deliveries_total",
			Help: "Lead delivery attempts by result",
		},
		[]string{"result"},
	)
)

// CartChanged records a cart mutation. Its signature matches rfq.ChangeHook.
func CartChanged(_ string, items []domain.LineItem) {
	CartChanges.Inc()
	CartSize.Observe(float64(len(items)))
}
