package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/majifix/service-request/internal/api/dto"
	"github.com/majifix/service-request/internal/auth"
	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/internal/repository"
	"github.com/majifix/service-request/internal/service"
	"github.com/majifix/service-request/pkg/util"
)

// ServiceRequestsHandler manages the request lifecycle endpoints.
type ServiceRequestsHandler struct {
	requests *service.RequestService
	locale   string
}

// NewServiceRequestsHandler constructs handler.
func NewServiceRequestsHandler(requests *service.RequestService, locale string) *ServiceRequestsHandler {
	if locale == "" {
		locale = domain.DefaultLocale
	}
	return &ServiceRequestsHandler{requests: requests, locale: locale}
}

// Create POST /servicerequests.
func (h *ServiceRequestsHandler) Create(c *fiber.Ctx) error {
	var payload dto.CreateServiceRequestRequest
	if err := c.BodyParser(&payload); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(payload.Reporter.Phone) == "" {
		return util.NewValidationError("reporter phone required", nil)
	}
	if payload.Method.Name != "" && !domain.IsValidContactMethod(domain.ContactMethodName(payload.Method.Name)) {
		return util.NewValidationError("unknown contact method", map[string]any{"method": payload.Method.Name})
	}

	req := payload.ToDomain()
	if req.Operator == nil {
		if party, ok := auth.PartyFromContext(c); ok {
			req.Operator = party
		}
	}

	created, err := h.requests.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.render(c, created)})
}

// List GET /servicerequests.
func (h *ServiceRequestsHandler) List(c *fiber.Ctx) error {
	filter := parseFilter(c)
	requests, err := h.requests.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]any, 0, len(requests))
	for i := range requests {
		items = append(items, h.render(c, &requests[i]))
	}
	return c.JSON(fiber.Map{
		"data":   items,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// Get GET /servicerequests/:id.
func (h *ServiceRequestsHandler) Get(c *fiber.Ctx) error {
	req, err := h.requests.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req == nil {
		return util.NewNotFound("service request", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": h.render(c, req)})
}

// GetByCode GET /servicerequests/code/:code.
func (h *ServiceRequestsHandler) GetByCode(c *fiber.Ctx) error {
	req, err := h.requests.GetByCode(c.UserContext(), strings.ToUpper(c.Params("code")))
	if err != nil {
		return err
	}
	if req == nil {
		return util.NewNotFound("service request", map[string]any{"code": c.Params("code")})
	}
	return c.JSON(fiber.Map{"data": h.render(c, req)})
}

// Update PATCH /servicerequests/:id.
func (h *ServiceRequestsHandler) Update(c *fiber.Ctx) error {
	var payload dto.UpdateServiceRequestRequest
	if err := c.BodyParser(&payload); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	req, err := h.requests.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req == nil {
		return util.NewNotFound("service request", map[string]any{"id": c.Params("id")})
	}

	payload.ApplyTo(req)
	if party, ok := auth.PartyFromContext(c); ok {
		for i := range req.ChangeLogs {
			if req.ChangeLogs[i].ID == "" && req.ChangeLogs[i].Changer == nil {
				req.ChangeLogs[i].Changer = party
			}
		}
	}

	updated, err := h.requests.Update(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.render(c, updated)})
}

// Delete DELETE /servicerequests/:id.
func (h *ServiceRequestsHandler) Delete(c *fiber.Ctx) error {
	if err := h.requests.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// render projects a request for the response, switching to the legacy wire
// shape when ?legacy=true.
func (h *ServiceRequestsHandler) render(c *fiber.Ctx, req *domain.ServiceRequest) any {
	if c.QueryBool("legacy") {
		locale := c.Query("locale", h.locale)
		return service.MapToLegacy(req, locale)
	}
	return req
}

func parseFilter(c *fiber.Ctx) repository.ServiceRequestFilter {
	filter := repository.ServiceRequestFilter{
		Jurisdiction: c.Query("jurisdiction"),
		Service:      c.Query("service"),
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		SearchTerm:   c.Query("q"),
		Limit:        c.QueryInt("limit", 20),
		Offset:       c.QueryInt("offset", 0),
	}
	if raw := c.Query("resolved"); raw != "" {
		if resolved, err := strconv.ParseBool(raw); err == nil {
			filter.Resolved = &resolved
		}
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}
