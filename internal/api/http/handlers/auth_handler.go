package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/dto"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

// AuthHandler serves staff authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/staff/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	token, expiresAt, staff, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		StaffID:   staff.ID,
		Email:     staff.Email,
		Role:      string(staff.Role),
	})
}
