package monitoring

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	venuedom "github.com/Abhishekkjainn/smartslot-api/internal/domain/venue"
)

// Metrics owns the service collectors, registered on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	venueOperations *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartslot_http_requests_total",
				Help: "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartslot_http_request_duration_seconds",
				Help:    "HTTP request latency by route and method",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		venueOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartslot_venue_operations_total",
				Help: "Venue operations by outcome",
			},
			[]string{"operation", "result"},
		),
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.venueOperations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

// RecordVenueOperation implements usecase.VenueRecorder.
func (m *Metrics) RecordVenueOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.venueOperations.WithLabelValues(operation, Result(err)).Inc()
}

// Result maps an operation error onto a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, venuedom.ErrNotFound), errors.Is(err, venuedom.ErrSlotNotFound):
		return "not_found"
	case errors.Is(err, venuedom.ErrConflict):
		return "conflict"
	case errors.Is(err, venuedom.ErrMissingParams),
		errors.Is(err, venuedom.ErrInvalidTotalSpots),
		errors.Is(err, venuedom.ErrInvalidSmartSpots),
		errors.Is(err, venuedom.ErrTooManySmartSpots),
		errors.Is(err, venuedom.ErrMissingVenueID),
		errors.Is(err, venuedom.ErrMissingSlotParams),
		errors.Is(err, venuedom.ErrInvalidSlotID):
		return "invalid"
	default:
		return "error"
	}
}
