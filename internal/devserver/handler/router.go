package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/diplomadesk/internal/devserver/users"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

type Handler struct {
	users   *users.Service
	log     logging.Logger
	metrics *Metrics
}

func NewHandler(svc *users.Service, log logging.Logger, m *Metrics) *Handler {
	return &Handler{users: svc, log: log, metrics: m}
}

// NewRouter wires every route. reg receives the HTTP collectors and is
// served on /metrics.
func NewRouter(svc *users.Service, log logging.Logger, reg *prometheus.Registry) *gin.Engine {
	m := NewMetrics(reg)
	h := NewHandler(svc, log, m)

	r := gin.New()
	r.Use(gin.Recovery(), LoggingMiddleware(log, m))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		a := api.Group("/auth")
		a.POST("/login", h.Login)
		a.GET("/refresh-token", h.RefreshToken)
		a.GET("/logout", h.Logout)
	}

	protected := api.Group("", h.AuthMiddleware())
	{
		protected.GET("/account/info", h.AccountInfo)
		protected.GET("/degree-types", h.DegreeTypes)
		protected.GET("/issuers", h.Issuers)
	}

	return r
}
