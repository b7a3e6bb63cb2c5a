package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/dto"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

// RoComplaintsHandler serves the unauthenticated passenger endpoints.
// This is the channel that triggers the notification pipeline; writes
// are guarded by creator identity instead of tokens.
type RoComplaintsHandler struct {
	service *service.ComplaintService
}

// NewRoComplaintsHandler constructs handler.
func NewRoComplaintsHandler(complaintService *service.ComplaintService) *RoComplaintsHandler {
	return &RoComplaintsHandler{service: complaintService}
}

// Get GET /ro/complaint/get/:complain_id.
func (h *RoComplaintsHandler) Get(c *fiber.Ctx) error {
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

// GetByDate GET /ro/complaint/get/date/:date. The mobile_number query is
// mandatory here so passengers only see their own complaints.
func (h *RoComplaintsHandler) GetByDate(c *fiber.Ctx) error {
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	mobile := c.Query("mobile_number")
	if mobile == "" {
		return apperrors.NewValidationError("mobile_number query parameter is required", nil)
	}
	complaints, err := h.service.ListByDate(c.Context(), date, &mobile)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Complaints fetched successfully",
		"data":    dto.FromComplaints(complaints),
	})
}

// Create POST /ro/complaint/add.
func (h *RoComplaintsHandler) Create(c *fiber.Ctx) error {
	input, err := parseCreateForm(c)
	if err != nil {
		return err
	}
	name, _, err := identityFromInput(input)
	if err != nil {
		return err
	}
	if input.CreatedBy == nil {
		input.CreatedBy = &name
	}
	uploads, err := collectUploads(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.Create(c.Context(), events.SourcePassenger, input, uploads)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ComplaintResponse{
		Message: "Complaint created successfully",
		Data:    dto.FromComplaint(complaint),
	})
}

// Update PATCH and PUT /ro/complaint/update/:complain_id.
func (h *RoComplaintsHandler) Update(c *fiber.Ctx) error {
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	name, mobile, err := identityFromForm(c)
	if err != nil {
		return err
	}
	update, err := parseUpdateForm(c)
	if err != nil {
		return err
	}
	if update.UpdatedBy == nil {
		update.UpdatedBy = &name
	}
	uploads, err := collectUploads(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.UpdateAsPassenger(c.Context(), name, mobile, complainID, update, uploads)
	if err != nil {
		return err
	}
	return c.JSON(dto.ComplaintResponse{
		Message: "Complaint updated successfully",
		Data:    dto.FromComplaint(complaint),
	})
}

// Delete DELETE /ro/complaint/delete/:complain_id.
func (h *RoComplaintsHandler) Delete(c *fiber.Ctx) error {
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	var identity dto.PassengerIdentity
	if err := c.BodyParser(&identity); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if identity.Name == "" || identity.MobileNumber == "" {
		return apperrors.NewValidationError("name and mobile_number are required", nil)
	}
	if err := h.service.DeleteAsPassenger(c.Context(), identity.Name, identity.MobileNumber, complainID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Complaint deleted successfully",
		"complain_id": complainID,
	})
}

// DeleteMedia DELETE /ro/complaint/delete-image/:complain_id.
func (h *RoComplaintsHandler) DeleteMedia(c *fiber.Ctx) error {
	complainID, err := parseComplainID(c)
	if err != nil {
		return err
	}
	var req dto.DeleteMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.MobileNumber == "" {
		return apperrors.NewValidationError("name and mobile_number are required", nil)
	}
	deleted, err := h.service.DeleteMediaAsPassenger(c.Context(), req.Name, req.MobileNumber, complainID, req.DeletedMediaIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Media files deleted successfully",
		"complain_id": complainID,
		"deleted":     deleted,
	})
}

func identityFromInput(input service.ComplaintCreateInput) (string, string, error) {
	name := ""
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	mobile := ""
	if input.MobileNumber != nil {
		mobile = strings.TrimSpace(*input.MobileNumber)
	}
	if name == "" || mobile == "" {
		return "", "", apperrors.NewValidationError("name and mobile_number are required", nil)
	}
	return name, mobile, nil
}

func identityFromForm(c *fiber.Ctx) (string, string, error) {
	name := strings.TrimSpace(c.FormValue("name"))
	mobile := strings.TrimSpace(c.FormValue("mobile_number"))
	if name == "" || mobile == "" {
		return "", "", apperrors.NewValidationError("name and mobile_number are required", nil)
	}
	return name, mobile, nil
}
