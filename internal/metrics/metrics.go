package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments of the advertisement service.
type Metrics struct {
	// AdsCreated counts successfully created advertisements.
	AdsCreated prometheus.Counter
	// AdsDeleted counts deleted advertisements.
	AdsDeleted prometheus.Counter
	// ImpressionsServed counts recorded display events.
	ImpressionsServed prometheus.Counter
	// CampaignsCompleted counts quota-exhaustion transitions to completed.
	CampaignsCompleted prometheus.Counter
	// ImagesGenerated counts generation calls by outcome.
	ImagesGenerated *prometheus.CounterVec
}

// New creates and registers all metrics on reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AdsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ads_created_total",
			Help:      "Total number of advertisements created",
		}),
		AdsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ads_deleted_total",
			Help:      "Total number of advertisements deleted",
		}),
		ImpressionsServed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "impressions_served_total",
			Help:      "Total number of recorded impressions",
		}),
		CampaignsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_completed_total",
			Help:      "Total number of campaigns that exhausted their quota",
		}),
		ImagesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_generated_total",
			Help:      "Total number of image generation requests by outcome",
		}, []string{"outcome"}),
	}
}
