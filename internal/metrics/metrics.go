package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics counts booking submissions and server-side appointment
// creation outcomes.
type BookingMetrics struct {
	submitTotal    *prometheus.CounterVec
	createdTotal   *prometheus.CounterVec
	slotsGenerated prometheus.Histogram
	submitLatency  prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "submit_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "create_total",
			Help:      "Create-appointment requests handled by the API, by outcome",
		}, []string{"outcome"}),
		slotsGenerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "availability",
			Name:      "slots_generated",
			Help:      "Number of slots returned per availability lookup",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 200, 400},
		}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "submit_latency_seconds",
			Help:      "Latency of create-appointment calls made by the submitter",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submitTotal, m.createdTotal, m.slotsGenerated, m.submitLatency)
	return m
}

func (m *BookingMetrics) ObserveSubmit(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.submitTotal.WithLabelValues(outcome).Inc()
	if seconds >= 0 {
		m.submitLatency.Observe(seconds)
	}
}

func (m *BookingMetrics) ObserveCreate(outcome string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveSlots(n int) {
	if m == nil {
		return
	}
	m.slotsGenerated.Observe(float64(n))
}
