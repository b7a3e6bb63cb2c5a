package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

// RequireRole ensures the staff principal holds one of the allowed roles.
// With no roles given, any authenticated staff user passes.
func RequireRole(allowed ...domain.StaffRole) fiber.Handler {
	allowedSet := make(map[domain.StaffRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		staff, ok := StaffFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("staff user required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[staff.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
