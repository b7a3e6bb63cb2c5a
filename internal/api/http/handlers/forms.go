package handlers

import (
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

// mediaFilesField is the multipart field carrying complaint attachments.
const mediaFilesField = "rail_sathi_complain_media_files"

const dateLayout = "2006-01-02"

func formString(c *fiber.Ctx, key string) *string {
	val := c.FormValue(key)
	if val == "" {
		return nil
	}
	return &val
}

func formInt(c *fiber.Ctx, key string) (*int, error) {
	val := c.FormValue(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil, apperrors.NewValidationError(key+" must be an integer", nil)
	}
	return &parsed, nil
}

func formDate(c *fiber.Ctx, key string) (*time.Time, error) {
	val := c.FormValue(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, val)
	if err != nil {
		return nil, apperrors.NewValidationError(key+" must be a date in YYYY-MM-DD format", nil)
	}
	return &parsed, nil
}

// parseCreateForm builds the create input from a multipart form.
func parseCreateForm(c *fiber.Ctx) (service.ComplaintCreateInput, error) {
	input := service.ComplaintCreateInput{
		PNRNumber:    formString(c, "pnr_number"),
		Name:         formString(c, "name"),
		MobileNumber: formString(c, "mobile_number"),
		Description:  formString(c, "complain_description"),
		TrainNumber:  formString(c, "train_number"),
		TrainName:    formString(c, "train_name"),
		Coach:        formString(c, "coach"),
		CreatedBy:    formString(c, "created_by"),
	}
	if val := formString(c, "is_pnr_validated"); val != nil {
		status := domain.PNRValidationStatus(*val)
		input.IsPNRValidated = &status
	}
	if val := formString(c, "complain_type"); val != nil {
		kind := domain.ComplaintType(*val)
		input.ComplainType = &kind
	}
	var err error
	if input.ComplainDate, err = formDate(c, "complain_date"); err != nil {
		return input, err
	}
	if input.BerthNo, err = formInt(c, "berth_no"); err != nil {
		return input, err
	}
	return input, nil
}

// parseUpdateForm builds a sparse update from a multipart form. Absent
// fields stay nil and the corresponding columns are left untouched.
func parseUpdateForm(c *fiber.Ctx) (repository.ComplaintUpdate, error) {
	update := repository.ComplaintUpdate{
		PNRNumber:    formString(c, "pnr_number"),
		Name:         formString(c, "name"),
		MobileNumber: formString(c, "mobile_number"),
		Description:  formString(c, "complain_description"),
		TrainNumber:  formString(c, "train_number"),
		TrainName:    formString(c, "train_name"),
		Coach:        formString(c, "coach"),
		UpdatedBy:    formString(c, "updated_by"),
	}
	if val := formString(c, "is_pnr_validated"); val != nil {
		status := domain.PNRValidationStatus(*val)
		update.IsPNRValidated = &status
	}
	if val := formString(c, "complain_type"); val != nil {
		kind := domain.ComplaintType(*val)
		update.ComplainType = &kind
	}
	if val := formString(c, "complain_status"); val != nil {
		status := domain.ComplaintStatus(*val)
		update.Status = &status
	}
	var err error
	if update.ComplainDate, err = formDate(c, "complain_date"); err != nil {
		return update, err
	}
	if update.BerthNo, err = formInt(c, "berth_no"); err != nil {
		return update, err
	}
	return update, nil
}

// collectUploads reads every attached file into memory so uploads can run
// on their own goroutines after the request body is released.
func collectUploads(c *fiber.Ctx) ([]service.MediaUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// not a multipart request, nothing attached
		return nil, nil
	}
	files := form.File[mediaFilesField]
	uploads := make([]service.MediaUpload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable file: "+header.Filename, nil)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable file: "+header.Filename, nil)
		}
		uploads = append(uploads, service.MediaUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

func parseComplainID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("complain_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("complain_id must be a positive integer", nil)
	}
	return id, nil
}

func parseDateParam(c *fiber.Ctx) (time.Time, error) {
	date, err := time.Parse(dateLayout, c.Params("date"))
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be in YYYY-MM-DD format", nil)
	}
	return date, nil
}
