package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/pkg/util"
)

const partyKey = "auth_party"

// Middleware validates bearer tokens and exposes the calling party.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return util.NewUnauthorized("invalid token")
	}

	c.Locals(partyKey, &domain.Party{
		ID:    claims.PartyID,
		Name:  claims.Name,
		Phone: claims.Phone,
		Email: claims.Email,
	})
	return c.Next()
}

// PartyFromContext retrieves the authenticated party, if any.
func PartyFromContext(c *fiber.Ctx) (*domain.Party, bool) {
	val := c.Locals(partyKey)
	if val == nil {
		return nil, false
	}
	party, ok := val.(*domain.Party)
	return party, ok
}
