package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guideGenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelguide_generations_total",
		Help: "Guide generation requests sent to the generation service, by outcome.",
	}, []string{"outcome"})

	guideGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "travelguide_generation_duration_seconds",
		Help:    "Round trip time of guide generation requests.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	})

	formRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelguide_form_rejections_total",
		Help: "Submissions refused before any network call, by reason.",
	}, []string{"reason"})

	healthChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelguide_health_checks_total",
		Help: "Health checks against the generation service, by outcome.",
	}, []string{"outcome"})
)
