package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/majifix/service-request/internal/repository"
	"github.com/majifix/service-request/internal/service"
)

// ReportsHandler serves the analytics endpoints.
type ReportsHandler struct {
	reports *service.ReportingService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportingService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Overviews GET /reports/overviews.
func (h *ReportsHandler) Overviews(c *fiber.Ctx) error {
	overview, err := h.reports.Overviews(c.UserContext(), criteriaFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overview})
}

// Standings GET /reports/standings.
func (h *ReportsHandler) Standings(c *fiber.Ctx) error {
	standings, err := h.reports.Standings(c.UserContext(), criteriaFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": standings})
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.UserContext(), criteriaFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// Phones GET /reports/phones.
func (h *ReportsHandler) Phones(c *fiber.Ctx) error {
	phones, err := h.reports.Phones(c.UserContext(), criteriaFrom(c))
	if err != nil {
		return err
	}
	if phones == nil {
		phones = []string{}
	}
	return c.JSON(fiber.Map{"data": phones})
}

func criteriaFrom(c *fiber.Ctx) repository.Criteria {
	return repository.Criteria{Jurisdiction: c.Query("jurisdiction")}
}
