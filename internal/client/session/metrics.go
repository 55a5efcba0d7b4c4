package session

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts renewal activity. Calls exceeding RoundTrips is the
// single-flight doing its job.
type Metrics struct {
	RefreshCalls      prometheus.Counter
	RefreshRoundTrips *prometheus.CounterVec
	SessionsExpired   prometheus.Counter
	Loading           prometheus.Gauge
}

// NewMetrics builds the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RefreshCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diplomadesk",
			Subsystem: "session",
			Name:      "refresh_calls_total",
			Help:      "Callers that asked for a token renewal.",
		}),
		RefreshRoundTrips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diplomadesk",
			Subsystem: "session",
			Name:      "refresh_round_trips_total",
			Help:      "Requests sent to the refresh endpoint, by result.",
		}, []string{"result"}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diplomadesk",
			Subsystem: "session",
			Name:      "expired_total",
			Help:      "Sessions ended by a failed renewal or bootstrap.",
		}),
		Loading: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "diplomadesk",
			Subsystem: "session",
			Name:      "loading",
			Help:      "Bootstraps and renewals currently running.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.RefreshCalls, m.RefreshRoundTrips, m.SessionsExpired, m.Loading)
	}
	return m
}
