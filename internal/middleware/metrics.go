package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smash_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ReactionsApplied counts interaction toggle outcomes by target type and action.
	ReactionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smash_reactions_applied_total",
		Help: "Total reaction toggle operations by target type and action",
	}, []string{"target_type", "action"})

	// ReportTransitions counts moderation state transitions by resulting status.
	ReportTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smash_report_transitions_total",
		Help: "Total report status transitions by resulting status",
	}, []string{"status"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
