package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Logins   *prometheus.CounterVec
	Refresh  *prometheus.CounterVec
}

// NewMetrics builds the HTTP collectors and registers them with reg when it
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diplomadesk",
			Subsystem: "devserver",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diplomadesk",
			Subsystem: "devserver",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		Refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diplomadesk",
			Subsystem: "devserver",
			Name:      "token_refreshes_total",
			Help:      "Refresh-token redemptions by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Logins, m.Refresh)
	}
	return m
}
