package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/notify"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/storage"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	media      repository.MediaRepository
	trains     repository.TrainRepository
	staff      repository.StaffRepository
	store      storage.ObjectStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	maxImages  int
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	MediaRepo     repository.MediaRepository
	TrainRepo     repository.TrainRepository
	StaffRepo     repository.StaffRepository
	Store         storage.ObjectStore
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	MaxImages     int
}

// ComplaintCreateInput describes a new complaint.
type ComplaintCreateInput struct {
	PNRNumber      *string
	IsPNRValidated *domain.PNRValidationStatus
	Name           *string
	MobileNumber   *string
	ComplainType   *domain.ComplaintType
	Description    *string
	ComplainDate   *time.Time
	TrainNumber    *string
	TrainName      *string
	Coach          *string
	BerthNo        *int
	CreatedBy      *string
}

// MediaUpload is one file submitted alongside a complaint.
type MediaUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	maxImages := deps.MaxImages
	if maxImages <= 0 {
		maxImages = 10
	}
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		media:      deps.MediaRepo,
		trains:     deps.TrainRepo,
		staff:      deps.StaffRepo,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		maxImages:  maxImages,
	}
}

// Create persists a complaint, uploads its media (one goroutine per file,
// joined before returning) and publishes the created event. The passenger
// channel is the one that triggers the notification pipeline downstream.
func (s *ComplaintService) Create(ctx context.Context, source string, input ComplaintCreateInput, uploads []MediaUpload) (*domain.Complaint, error) {
	if imageCount(uploads) > s.maxImages {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("a maximum of %d images is allowed per complaint", s.maxImages), nil)
	}

	complaint := &domain.Complaint{
		PNRNumber:    input.PNRNumber,
		Name:         input.Name,
		MobileNumber: input.MobileNumber,
		ComplainType: input.ComplainType,
		Description:  input.Description,
		ComplainDate: input.ComplainDate,
		Status:       domain.ComplaintStatusPending,
		TrainNumber:  input.TrainNumber,
		TrainName:    input.TrainName,
		Coach:        input.Coach,
		BerthNo:      input.BerthNo,
		CreatedBy:    input.CreatedBy,
	}
	complaint.IsPNRValidated = domain.PNRValidationNotAttempted
	if input.IsPNRValidated != nil {
		complaint.IsPNRValidated = *input.IsPNRValidated
	}
	if complaint.ComplainDate == nil {
		today := time.Now().Truncate(24 * time.Hour)
		complaint.ComplainDate = &today
	}

	// registry backfill; a train missing from the registry is logged, the
	// complaint is still created
	depot := ""
	if complaint.TrainNumber != nil && *complaint.TrainNumber != "" {
		train, err := s.trains.FindByNumber(ctx, *complaint.TrainNumber)
		switch {
		case err != nil:
			s.logger.Warn("train registry lookup failed",
				zap.String("train_no", *complaint.TrainNumber), zap.Error(err))
		case train == nil:
			s.logger.Error("train not found in registry, still creating complaint",
				zap.String("train_no", *complaint.TrainNumber))
		default:
			complaint.TrainID = &train.ID
			depot = train.Depot
			if complaint.TrainName == nil || *complaint.TrainName == "" {
				complaint.TrainName = &train.TrainName
			}
		}
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.attachMedia(ctx, complaint.ComplainID, uploads, input.CreatedBy)

	full, err := s.complaints.GetByID(ctx, complaint.ComplainID)
	if err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventComplaintCreated,
		ComplainID: full.ComplainID,
		Payload: events.ComplaintCreatedPayload{
			Source:  source,
			Details: snapshotFor(full, depot),
		},
	})
	return full, nil
}

// Get fetches a complaint with its media files.
func (s *ComplaintService) Get(ctx context.Context, complainID int64) (*domain.Complaint, error) {
	return s.complaints.GetByID(ctx, complainID)
}

// ListByDate lists complaints for a calendar date, optionally restricted
// to one passenger mobile number.
func (s *ComplaintService) ListByDate(ctx context.Context, date time.Time, mobileNumber *string) ([]domain.Complaint, error) {
	return s.complaints.ListByDate(ctx, date, mobileNumber)
}

// CanManage reports whether a staff user may use the complaint write API:
// admins always, other roles only with an explicit train-access assignment.
func (s *ComplaintService) CanManage(ctx context.Context, staff *domain.StaffUser) (bool, error) {
	if staff.IsAdmin() {
		return true, nil
	}
	return s.staff.HasAccessGrant(ctx, staff.ID)
}

// UpdateAsStaff applies a partial or full update on behalf of staff.
// Completed complaints may only be touched by railway admins.
func (s *ComplaintService) UpdateAsStaff(ctx context.Context, staff *domain.StaffUser, complainID int64, update repository.ComplaintUpdate, uploads []MediaUpload) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return nil, err
	}
	if complaint.Status == domain.ComplaintStatusCompleted && staff.Role != domain.RoleRailwayAdmin {
		return nil, apperrors.NewForbidden("completed complaint cannot be updated by non-railway admin users")
	}
	return s.applyUpdate(ctx, complainID, update, uploads, events.SourceStaff)
}

// UpdateAsPassenger applies an update on the unauthenticated channel. Only
// the creator, identified by name and mobile number, may update a
// complaint that is not yet completed.
func (s *ComplaintService) UpdateAsPassenger(ctx context.Context, name, mobileNumber string, complainID int64, update repository.ComplaintUpdate, uploads []MediaUpload) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return nil, err
	}
	if err := passengerOwns(complaint, name, mobileNumber); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, complainID, update, uploads, events.SourcePassenger)
}

// DeleteAsStaff removes a complaint under the staff permission rules.
func (s *ComplaintService) DeleteAsStaff(ctx context.Context, staff *domain.StaffUser, complainID int64) error {
	complaint, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return err
	}
	if complaint.Status == domain.ComplaintStatusCompleted && staff.Role != domain.RoleRailwayAdmin {
		return apperrors.NewForbidden("completed complaint cannot be deleted by non-railway admin users")
	}
	return s.deleteAndPublish(ctx, complainID, events.SourceStaff)
}

// DeleteAsPassenger removes a complaint under the creator-identity rules.
func (s *ComplaintService) DeleteAsPassenger(ctx context.Context, name, mobileNumber string, complainID int64) error {
	complaint, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return err
	}
	if err := passengerOwns(complaint, name, mobileNumber); err != nil {
		return err
	}
	return s.deleteAndPublish(ctx, complainID, events.SourcePassenger)
}

// DeleteMediaAsStaff removes selected media files from a complaint.
func (s *ComplaintService) DeleteMediaAsStaff(ctx context.Context, staff *domain.StaffUser, complainID int64, mediaIDs []int64) (int64, error) {
	complaint, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return 0, err
	}
	if complaint.Status == domain.ComplaintStatusCompleted && staff.Role != domain.RoleRailwayAdmin {
		return 0, apperrors.NewForbidden("completed complaint cannot be updated by non-railway admin users")
	}
	return s.deleteMedia(ctx, complainID, mediaIDs)
}

// DeleteMediaAsPassenger removes selected media files under the
// creator-identity rules.
func (s *ComplaintService) DeleteMediaAsPassenger(ctx context.Context, name, mobileNumber string, complainID int64, mediaIDs []int64) (int64, error) {
	complaint, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return 0, err
	}
	if err := passengerOwns(complaint, name, mobileNumber); err != nil {
		return 0, err
	}
	return s.deleteMedia(ctx, complainID, mediaIDs)
}

func (s *ComplaintService) applyUpdate(ctx context.Context, complainID int64, update repository.ComplaintUpdate, uploads []MediaUpload, source string) (*domain.Complaint, error) {
	if imageCount(uploads) > s.maxImages {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("a maximum of %d images is allowed per complaint", s.maxImages), nil)
	}
	if err := s.complaints.Update(ctx, complainID, update); err != nil {
		return nil, err
	}

	s.attachMedia(ctx, complainID, uploads, update.UpdatedBy)

	existing, err := s.media.CountImages(ctx, complainID)
	if err == nil && existing > s.maxImages {
		s.logger.Warn("complaint exceeds image cap after update",
			zap.Int64("complain_id", complainID), zap.Int("images", existing))
	}

	full, err := s.complaints.GetByID(ctx, complainID)
	if err != nil {
		return nil, err
	}
	updatedBy := ""
	if update.UpdatedBy != nil {
		updatedBy = *update.UpdatedBy
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventComplaintUpdated,
		ComplainID: complainID,
		Payload:    events.ComplaintUpdatedPayload{Source: source, UpdatedBy: updatedBy},
	})
	return full, nil
}

func (s *ComplaintService) deleteAndPublish(ctx context.Context, complainID int64, source string) error {
	if err := s.complaints.Delete(ctx, complainID); err != nil {
		return err
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventComplaintDeleted,
		ComplainID: complainID,
		Payload:    events.ComplaintDeletedPayload{Source: source},
	})
	return nil
}

func (s *ComplaintService) deleteMedia(ctx context.Context, complainID int64, mediaIDs []int64) (int64, error) {
	if len(mediaIDs) == 0 {
		return 0, apperrors.NewValidationError("no media IDs provided for deletion", nil)
	}
	deleted, err := s.media.DeleteByIDs(ctx, complainID, mediaIDs)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, apperrors.NewValidationError("no matching media files found for deletion", nil)
	}
	return deleted, nil
}

// attachMedia uploads every file on its own goroutine and waits for all of
// them before returning. Upload failures are logged, never surfaced; the
// complaint exists regardless.
func (s *ComplaintService) attachMedia(ctx context.Context, complainID int64, uploads []MediaUpload, actor *string) {
	if len(uploads) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, upload := range uploads {
		wg.Add(1)
		go func(upload MediaUpload) {
			defer wg.Done()
			s.uploadOne(ctx, complainID, upload, actor)
		}(upload)
	}
	wg.Wait()
}

func (s *ComplaintService) uploadOne(ctx context.Context, complainID int64, upload MediaUpload, actor *string) {
	mediaType, ok := mediaTypeFor(upload.ContentType)
	if !ok {
		s.logger.Error("unsupported media type",
			zap.Int64("complain_id", complainID),
			zap.String("file", upload.FileName),
			zap.String("content_type", upload.ContentType))
		return
	}

	key := objectKey(complainID, mediaType, upload.FileName)
	url, err := s.store.Put(ctx, key, upload.ContentType, upload.Data)
	if err != nil {
		s.logger.Error("media upload failed",
			zap.Int64("complain_id", complainID),
			zap.String("file", upload.FileName),
			zap.Error(err))
		return
	}

	media := &domain.ComplaintMedia{
		ComplainID: complainID,
		MediaType:  mediaType,
		MediaURL:   url,
		CreatedBy:  actor,
	}
	if err := s.media.Create(ctx, media); err != nil {
		s.logger.Error("media record creation failed",
			zap.Int64("complain_id", complainID),
			zap.String("url", url),
			zap.Error(err))
		return
	}
	s.logger.Info("media uploaded",
		zap.Int64("complain_id", complainID),
		zap.String("url", url))
}

func passengerOwns(complaint *domain.Complaint, name, mobileNumber string) error {
	creator := ""
	if complaint.CreatedBy != nil {
		creator = *complaint.CreatedBy
	}
	mobile := ""
	if complaint.MobileNumber != nil {
		mobile = *complaint.MobileNumber
	}
	if creator != name || mobile != mobileNumber {
		return apperrors.NewForbidden("only the user who created the complaint can modify it")
	}
	if complaint.Status == domain.ComplaintStatusCompleted {
		return apperrors.NewForbidden("completed complaint cannot be modified")
	}
	return nil
}

func imageCount(uploads []MediaUpload) int {
	count := 0
	for _, upload := range uploads {
		if strings.HasPrefix(upload.ContentType, "image") {
			count++
		}
	}
	return count
}

func mediaTypeFor(contentType string) (domain.MediaType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image"):
		return domain.MediaTypeImage, true
	case strings.HasPrefix(contentType, "video"):
		return domain.MediaTypeVideo, true
	default:
		return "", false
	}
}

func objectKey(complainID int64, mediaType domain.MediaType, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	stamp := time.Now().Format("2006-01-02_15_04_05")
	fragment := uuid.NewString()[:5]
	return fmt.Sprintf("rail_sathi_complain_%ss/rail_sathi_complain_%d_%s_%s%s",
		mediaType, complainID, stamp, fragment, ext)
}

// snapshotFor builds the immutable details the notification pipeline
// consumes. Values the complaint does not carry render as empty strings.
func snapshotFor(complaint *domain.Complaint, depot string) notify.ComplaintDetails {
	details := notify.ComplaintDetails{
		ComplainID: complaint.ComplainID,
		TrainDepot: depot,
		CreatedAt:  complaint.CreatedAt,
	}
	if complaint.TrainNumber != nil {
		details.TrainNo = *complaint.TrainNumber
		details.TrainNumber = *complaint.TrainNumber
	}
	if complaint.TrainName != nil {
		details.TrainName = *complaint.TrainName
	}
	if complaint.ComplainDate != nil {
		details.DateOfJourney = complaint.ComplainDate.Format("2006-01-02")
	}
	if complaint.Name != nil {
		details.PassengerName = *complaint.Name
	}
	if complaint.MobileNumber != nil {
		details.UserPhoneNumber = *complaint.MobileNumber
	}
	if complaint.PNRNumber != nil {
		details.PNR = *complaint.PNRNumber
	}
	if complaint.BerthNo != nil {
		details.Berth = fmt.Sprintf("%d", *complaint.BerthNo)
	}
	if complaint.Coach != nil {
		details.Coach = *complaint.Coach
	}
	if complaint.Description != nil {
		details.Description = *complaint.Description
	}
	return details
}
