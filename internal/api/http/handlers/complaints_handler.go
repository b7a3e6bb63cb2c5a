package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/dto"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/auth"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

// ComplaintsHandler serves the authenticated staff complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Get GET /complaint/get/:complain_id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	if _, ok := auth.StaffFromContext(c); !ok {
		return apperrors.NewUnauthorized("staff user required")
	}
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.Get(c.Context(), complainID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ComplaintResponse{
		Message: "Complaint details fetched successfully",
		Data:    dto.FromComplaint(complaint),
	})
}

// GetByDate GET /complaint/get/date/:date with optional mobile_number query.
func (h *ComplaintsHandler) GetByDate(c *fiber.Ctx) error {
	if _, ok := auth.StaffFromContext(c); !ok {
		return apperrors.NewUnauthorized("staff user required")
	}
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	var mobile *string
	if val := c.Query("mobile_number"); val != "" {
		mobile = &val
	}
	complaints, err := h.service.ListByDate(c.Context(), date, mobile)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Complaints fetched successfully",
		"data":    dto.FromComplaints(complaints),
	})
}

// Create POST /complaint/add.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	staff, err := h.requireManager(c)
	if err != nil {
		return err
	}
	input, err := parseCreateForm(c)
	if err != nil {
		return err
	}
	if input.CreatedBy == nil {
		input.CreatedBy = &staff.Email
	}
	uploads, err := collectUploads(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.Create(c.Context(), events.SourceStaff, input, uploads)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ComplaintResponse{
		Message: "Complaint created successfully",
		Data:    dto.FromComplaint(complaint),
	})
}

// Update PATCH and PUT /complaint/update/:complain_id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	staff, err := h.requireManager(c)
	if err != nil {
		return err
	}
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	update, err := parseUpdateForm(c)
	if err != nil {
		return err
	}
	if update.UpdatedBy == nil {
		update.UpdatedBy = &staff.Email
	}
	uploads, err := collectUploads(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.UpdateAsStaff(c.Context(), staff, complainID, update, uploads)
	if err != nil {
		return err
	}
	return c.JSON(dto.ComplaintResponse{
		Message: "Complaint updated successfully",
		Data:    dto.FromComplaint(complaint),
	})
}

// Delete DELETE /complaint/delete/:complain_id.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	staff, err := h.requireManager(c)
	if err != nil {
		return err
	}
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAsStaff(c.Context(), staff, complainID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Complaint deleted successfully",
		"complain_id": complainID,
	})
}

// DeleteMedia DELETE /complaint/delete-image/:complain_id.
func (h *ComplaintsHandler) DeleteMedia(c *fiber.Ctx) error {
	staff, err := h.requireManager(c)
	if err != nil {
		return err
	}
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	var req dto.DeleteMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	deleted, err := h.service.DeleteMediaAsStaff(c.Context(), staff, complainID, req.DeletedMediaIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Media files deleted successfully",
		"complain_id": complainID,
		"deleted":     deleted,
	})
}

// requireManager resolves the authenticated staff user and checks the
// management permission: admins always, others need a train assignment.
func (h *ComplaintsHandler) requireManager(c *fiber.Ctx) (*domain.StaffUser, error) {
	staff, ok := auth.StaffFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("staff user required")
	}
	allowed, err := h.service.CanManage(c.Context(), staff)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbidden("Permission Denied")
	}
	return staff, nil
}
