package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

const principalKey = "auth_staff"

// AuthMiddleware validates bearer tokens and loads the staff principal.
type AuthMiddleware struct {
	tokens *TokenManager
	staff  repository.StaffRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, staff repository.StaffRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, staff: staff}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	staff, err := m.staff.GetByID(c.Context(), claims.StaffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("staff not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, staff)
	return c.Next()
}

// StaffFromContext retrieves the authenticated staff user.
func StaffFromContext(c *fiber.Ctx) (*domain.StaffUser, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	staff, ok := val.(*domain.StaffUser)
	return staff, ok
}
