package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	upstreamRequests  *prometheus.CounterVec
	upstreamDuration  *prometheus.HistogramVec
	selectionRejected *prometheus.CounterVec
	bookingsSubmitted *prometheus.CounterVec
	calendarEvents    *prometheus.HistogramVec
}

// New registers the collectors in the default prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors in reg.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_api_requests_total",
			Help:        "Requests sent to the booking API",
			ConstLabels: labels,
		}, []string{"endpoint", "status"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_api_request_duration_seconds",
			Help:        "Booking API request duration",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint"}),
		selectionRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_selection_rejected_total",
			Help:        "Slot selections rejected locally",
			ConstLabels: labels,
		}, []string{"reason"}),
		bookingsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_bookings_submitted_total",
			Help:        "Booking submissions by result",
			ConstLabels: labels,
		}, []string{"result"}),
		calendarEvents: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "calendar_events_assembled",
			Help:        "Number of events per assembled calendar snapshot",
			ConstLabels: labels,
			Buckets:     []float64{0, 10, 50, 100, 250, 500, 1000, 2500},
		}, []string{"kind"}),
	}
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveUpstream records one call to the booking API. status is 0 on transport errors.
func (m *Metrics) ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) IncSelectionRejected(reason string) {
	if m == nil {
		return
	}
	m.selectionRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncBookingSubmitted(result string) {
	if m == nil {
		return
	}
	m.bookingsSubmitted.WithLabelValues(result).Inc()
}

// ObserveEvents records the size of an assembled snapshot per event kind.
func (m *Metrics) ObserveEvents(kind string, count int) {
	if m == nil {
		return
	}
	m.calendarEvents.WithLabelValues(kind).Observe(float64(count))
}
