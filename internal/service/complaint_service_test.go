package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

type memComplaintRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Complaint
	media  *memMediaRepo
}

func newMemComplaintRepo(media *memMediaRepo) *memComplaintRepo {
	return &memComplaintRepo{nextID: 1, byID: make(map[int64]*domain.Complaint), media: media}
}

func (r *memComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint.ComplainID = r.nextID
	r.nextID++
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	stored := *complaint
	r.byID[complaint.ComplainID] = &stored
	return nil
}

func (r *memComplaintRepo) GetByID(ctx context.Context, complainID int64) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[complainID]
	if !ok {
		return nil, apperrors.NewNotFound("complaint", nil)
	}
	out := *stored
	if r.media != nil {
		out.MediaFiles = r.media.forComplaint(complainID)
	}
	return &out, nil
}

func (r *memComplaintRepo) ListByDate(ctx context.Context, date time.Time, mobileNumber *string) ([]domain.Complaint, error) {
	return nil, nil
}

func (r *memComplaintRepo) Update(ctx context.Context, complainID int64, update repository.ComplaintUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[complainID]
	if !ok {
		return apperrors.NewNotFound("complaint", nil)
	}
	if update.Status != nil {
		stored.Status = *update.Status
	}
	if update.Description != nil {
		stored.Description = update.Description
	}
	if update.UpdatedBy != nil {
		stored.UpdatedBy = update.UpdatedBy
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memComplaintRepo) Delete(ctx context.Context, complainID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[complainID]; !ok {
		return apperrors.NewNotFound("complaint", nil)
	}
	delete(r.byID, complainID)
	return nil
}

type memMediaRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.ComplaintMedia
}

func (r *memMediaRepo) Create(ctx context.Context, media *domain.ComplaintMedia) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	media.ID = r.nextID
	media.CreatedAt = time.Now()
	media.UpdatedAt = media.CreatedAt
	r.items = append(r.items, *media)
	return nil
}

func (r *memMediaRepo) DeleteByIDs(ctx context.Context, complainID int64, mediaIDs []int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[int64]struct{}, len(mediaIDs))
	for _, id := range mediaIDs {
		wanted[id] = struct{}{}
	}
	var kept []domain.ComplaintMedia
	var deleted int64
	for _, item := range r.items {
		if _, hit := wanted[item.ID]; hit && item.ComplainID == complainID {
			deleted++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return deleted, nil
}

func (r *memMediaRepo) CountImages(ctx context.Context, complainID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.ComplainID == complainID && item.MediaType == domain.MediaTypeImage {
			count++
		}
	}
	return count, nil
}

func (r *memMediaRepo) forComplaint(complainID int64) []domain.ComplaintMedia {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ComplaintMedia
	for _, item := range r.items {
		if item.ComplainID == complainID {
			out = append(out, item)
		}
	}
	return out
}

type memTrainRepo struct {
	trains map[string]*domain.TrainDetails
}

func (r *memTrainRepo) FindByNumber(ctx context.Context, trainNo string) (*domain.TrainDetails, error) {
	return r.trains[trainNo], nil
}

type memStaffRepo struct {
	grants map[int64]bool
}

func (r *memStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffUser, error) {
	return nil, apperrors.NewNotFound("staff user", nil)
}

func (r *memStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	return nil, apperrors.NewNotFound("staff user", nil)
}

func (r *memStaffRepo) HasAccessGrant(ctx context.Context, staffID int64) (bool, error) {
	return r.grants[staffID], nil
}

type memStore struct {
	mu   sync.Mutex
	keys []string
}

func (s *memStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return "http://files.local/" + key, nil
}

type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Publish(ctx context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *capturingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *capturingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

type serviceFixture struct {
	service    *ComplaintService
	complaints *memComplaintRepo
	media      *memMediaRepo
	store      *memStore
	dispatcher *capturingDispatcher
}

func newServiceFixture(trains map[string]*domain.TrainDetails) *serviceFixture {
	media := &memMediaRepo{}
	complaints := newMemComplaintRepo(media)
	store := &memStore{}
	dispatcher := &capturingDispatcher{}
	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo: complaints,
		MediaRepo:     media,
		TrainRepo:     &memTrainRepo{trains: trains},
		StaffRepo:     &memStaffRepo{grants: map[int64]bool{}},
		Store:         store,
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
		MaxImages:     3,
	})
	return &serviceFixture{
		service:    svc,
		complaints: complaints,
		media:      media,
		store:      store,
		dispatcher: dispatcher,
	}
}

func strPtr(s string) *string { return &s }

func imageUpload(name string) MediaUpload {
	return MediaUpload{FileName: name, ContentType: "image/jpeg", Data: []byte("jpeg")}
}

func TestCreateBackfillsFromRegistryAndPublishes(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{
		"12345": {ID: 9, TrainNo: "12345", TrainName: "Rajdhani Express", Depot: "DELHI"},
	})

	complaint, err := fixture.service.Create(context.Background(), events.SourcePassenger, ComplaintCreateInput{
		Name:         strPtr("Asha"),
		MobileNumber: strPtr("9876543210"),
		TrainNumber:  strPtr("12345"),
		CreatedBy:    strPtr("Asha"),
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, complaint.TrainID)
	assert.Equal(t, int64(9), *complaint.TrainID)
	require.NotNil(t, complaint.TrainName)
	assert.Equal(t, "Rajdhani Express", *complaint.TrainName)
	assert.Equal(t, domain.ComplaintStatusPending, complaint.Status)
	require.NotNil(t, complaint.ComplainDate)

	published := fixture.dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventComplaintCreated, published[0].Type)
	payload, ok := published[0].Payload.(events.ComplaintCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, events.SourcePassenger, payload.Source)
	assert.Equal(t, "DELHI", payload.Details.TrainDepot)
	assert.Equal(t, "12345", payload.Details.TrainKey())
}

func TestCreateSurvivesUnknownTrain(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	complaint, err := fixture.service.Create(context.Background(), events.SourcePassenger, ComplaintCreateInput{
		Name:         strPtr("Asha"),
		MobileNumber: strPtr("9876543210"),
		TrainNumber:  strPtr("99999"),
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, complaint.TrainID)
}

func TestCreateUploadsAllFilesBeforeReturning(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	uploads := []MediaUpload{
		imageUpload("a.jpg"),
		imageUpload("b.jpg"),
		{FileName: "c.mp4", ContentType: "video/mp4", Data: []byte("mp4")},
	}
	complaint, err := fixture.service.Create(context.Background(), events.SourceStaff, ComplaintCreateInput{
		Name: strPtr("Asha"),
	}, uploads)
	require.NoError(t, err)

	assert.Len(t, complaint.MediaFiles, 3)
	assert.Len(t, fixture.store.keys, 3)
}

func TestCreateRejectsTooManyImages(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	uploads := []MediaUpload{
		imageUpload("a.jpg"), imageUpload("b.jpg"),
		imageUpload("c.jpg"), imageUpload("d.jpg"),
	}
	_, err := fixture.service.Create(context.Background(), events.SourceStaff, ComplaintCreateInput{}, uploads)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateSkipsUnsupportedMediaTypes(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	uploads := []MediaUpload{
		imageUpload("a.jpg"),
		{FileName: "notes.txt", ContentType: "text/plain", Data: []byte("text")},
	}
	complaint, err := fixture.service.Create(context.Background(), events.SourceStaff, ComplaintCreateInput{}, uploads)
	require.NoError(t, err)
	assert.Len(t, complaint.MediaFiles, 1)
}

func TestUpdateAsPassengerRequiresCreatorIdentity(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	complaint, err := fixture.service.Create(context.Background(), events.SourcePassenger, ComplaintCreateInput{
		Name:         strPtr("Asha"),
		MobileNumber: strPtr("9876543210"),
		CreatedBy:    strPtr("Asha"),
	}, nil)
	require.NoError(t, err)

	_, err = fixture.service.UpdateAsPassenger(context.Background(), "Someone Else", "9876543210",
		complaint.ComplainID, repository.ComplaintUpdate{Description: strPtr("updated")}, nil)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	updated, err := fixture.service.UpdateAsPassenger(context.Background(), "Asha", "9876543210",
		complaint.ComplainID, repository.ComplaintUpdate{Description: strPtr("updated")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "updated", *updated.Description)
}

func TestPassengerCannotTouchCompletedComplaint(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	complaint, err := fixture.service.Create(context.Background(), events.SourcePassenger, ComplaintCreateInput{
		Name:         strPtr("Asha"),
		MobileNumber: strPtr("9876543210"),
		CreatedBy:    strPtr("Asha"),
	}, nil)
	require.NoError(t, err)

	completed := domain.ComplaintStatusCompleted
	require.NoError(t, fixture.complaints.Update(context.Background(), complaint.ComplainID,
		repository.ComplaintUpdate{Status: &completed}))

	_, err = fixture.service.UpdateAsPassenger(context.Background(), "Asha", "9876543210",
		complaint.ComplainID, repository.ComplaintUpdate{Description: strPtr("late edit")}, nil)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	err = fixture.service.DeleteAsPassenger(context.Background(), "Asha", "9876543210", complaint.ComplainID)
	require.Error(t, err)
}

func TestCompletedComplaintStaffRules(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	complaint, err := fixture.service.Create(context.Background(), events.SourceStaff, ComplaintCreateInput{
		Name: strPtr("Asha"),
	}, nil)
	require.NoError(t, err)

	completed := domain.ComplaintStatusCompleted
	require.NoError(t, fixture.complaints.Update(context.Background(), complaint.ComplainID,
		repository.ComplaintUpdate{Status: &completed}))

	warRoom := &domain.StaffUser{ID: 1, Role: domain.RoleWarRoomUser}
	_, err = fixture.service.UpdateAsStaff(context.Background(), warRoom, complaint.ComplainID,
		repository.ComplaintUpdate{Description: strPtr("edit")}, nil)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	railwayAdmin := &domain.StaffUser{ID: 2, Role: domain.RoleRailwayAdmin}
	_, err = fixture.service.UpdateAsStaff(context.Background(), railwayAdmin, complaint.ComplainID,
		repository.ComplaintUpdate{Description: strPtr("edit")}, nil)
	require.NoError(t, err)
}

func TestDeleteMediaValidation(t *testing.T) {
	fixture := newServiceFixture(map[string]*domain.TrainDetails{})

	complaint, err := fixture.service.Create(context.Background(), events.SourcePassenger, ComplaintCreateInput{
		Name:         strPtr("Asha"),
		MobileNumber: strPtr("9876543210"),
		CreatedBy:    strPtr("Asha"),
	}, []MediaUpload{imageUpload("a.jpg")})
	require.NoError(t, err)
	require.Len(t, complaint.MediaFiles, 1)

	_, err = fixture.service.DeleteMediaAsPassenger(context.Background(), "Asha", "9876543210",
		complaint.ComplainID, nil)
	require.Error(t, err)

	_, err = fixture.service.DeleteMediaAsPassenger(context.Background(), "Asha", "9876543210",
		complaint.ComplainID, []int64{9999})
	require.Error(t, err)

	deleted, err := fixture.service.DeleteMediaAsPassenger(context.Background(), "Asha", "9876543210",
		complaint.ComplainID, []int64{complaint.MediaFiles[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestCanManage(t *testing.T) {
	media := &memMediaRepo{}
	staffRepo := &memStaffRepo{grants: map[int64]bool{5: true}}
	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo: newMemComplaintRepo(media),
		MediaRepo:     media,
		TrainRepo:     &memTrainRepo{trains: map[string]*domain.TrainDetails{}},
		StaffRepo:     staffRepo,
		Store:         &memStore{},
		Dispatcher:    &capturingDispatcher{},
		Logger:        zap.NewNop(),
	})

	ctx := context.Background()
	ok, err := svc.CanManage(ctx, &domain.StaffUser{ID: 1, Role: domain.RoleS2Admin})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanManage(ctx, &domain.StaffUser{ID: 5, Role: domain.RoleWarRoomUser})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanManage(ctx, &domain.StaffUser{ID: 6, Role: domain.RoleWarRoomUser})
	require.NoError(t, err)
	assert.False(t, ok)
}
