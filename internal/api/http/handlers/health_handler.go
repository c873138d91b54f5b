package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 2 * time.Second

// Pinger is any backend with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness and readiness probes. Readiness walks the
// service's backends: Postgres holding the service requests and reference
// entities, and Redis backing the ticket-code counter.
type HealthHandler struct {
	serviceName string
	version     string
	checks      []readinessCheck
}

type readinessCheck struct {
	name   string
	role   string
	pinger Pinger
}

// NewHealthHandler returns a handler probing the request store and the
// ticket-code counter backend.
func NewHealthHandler(serviceName, version string, store, counterBackend Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks: []readinessCheck{
			{name: "postgres", role: "request store", pinger: store},
			{name: "redis", role: "ticket code counter", pinger: counterBackend},
		},
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness, naming each backend's role and state.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	dependencies := fiber.Map{}
	ready := true
	for _, check := range h.checks {
		entry := fiber.Map{"role": check.role, "status": "ok"}
		if err := check.pinger.Ping(ctx); err != nil {
			entry["status"] = err.Error()
			ready = false
		}
		dependencies[check.name] = entry
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": dependencies,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": dependencies,
	})
}
