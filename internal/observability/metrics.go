package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for the delivery pipeline.
type Metrics struct {
	EmailsSent       prometheus.Counter
	EmailsFailed     *prometheus.CounterVec
	TrackingEvents   *prometheus.CounterVec
	ShortenerResults *prometheus.CounterVec
	SendsInFlight    prometheus.Gauge
}

// Failure reasons used as the EmailsFailed label.
const (
	FailureTransient = "transient"
	FailureBounce    = "bounce"
	FailureTemplate  = "template"
)

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EmailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "newsletter",
			Name:      "emails_sent_total",
			Help:      "Newsletter emails accepted by the transport.",
		}),
		EmailsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter",
			Name:      "emails_failed_total",
			Help:      "Newsletter emails that could not be delivered, by reason.",
		}, []string{"reason"}),
		TrackingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter",
			Name:      "tracking_events_total",
			Help:      "Open and click tracking hits.",
		}, []string{"type", "verified"}),
		ShortenerResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter",
			Name:      "shortener_requests_total",
			Help:      "Link shortener lookups by result.",
		}, []string{"result"}),
		SendsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "newsletter",
			Name:      "sends_in_flight",
			Help:      "Campaign sends currently running in this process.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.EmailsSent, m.EmailsFailed, m.TrackingEvents, m.ShortenerResults, m.SendsInFlight)
	}
	return m
}
