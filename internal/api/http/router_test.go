package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/http/handlers"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/auth"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/config"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

type fakeComplaintRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{nextID: 1, byID: make(map[int64]*domain.Complaint)}
}

func (r *fakeComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
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

func (r *fakeComplaintRepo) GetByID(ctx context.Context, complainID int64) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[complainID]
	if !ok {
		return nil, apperrors.NewNotFound("complaint", nil)
	}
	out := *stored
	return &out, nil
}

func (r *fakeComplaintRepo) ListByDate(ctx context.Context, date time.Time, mobileNumber *string) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Complaint
	for _, stored := range r.byID {
		if stored.ComplainDate == nil || !stored.ComplainDate.Equal(date) {
			continue
		}
		if mobileNumber != nil && (stored.MobileNumber == nil || *stored.MobileNumber != *mobileNumber) {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

func (r *fakeComplaintRepo) Update(ctx context.Context, complainID int64, update repository.ComplaintUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[complainID]
	if !ok {
		return apperrors.NewNotFound("complaint", nil)
	}
	if update.Description != nil {
		stored.Description = update.Description
	}
	if update.Status != nil {
		stored.Status = *update.Status
	}
	return nil
}

func (r *fakeComplaintRepo) Delete(ctx context.Context, complainID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[complainID]; !ok {
		return apperrors.NewNotFound("complaint", nil)
	}
	delete(r.byID, complainID)
	return nil
}

type fakeMediaRepo struct{}

func (fakeMediaRepo) Create(ctx context.Context, media *domain.ComplaintMedia) error { return nil }
func (fakeMediaRepo) DeleteByIDs(ctx context.Context, complainID int64, mediaIDs []int64) (int64, error) {
	return int64(len(mediaIDs)), nil
}
func (fakeMediaRepo) CountImages(ctx context.Context, complainID int64) (int, error) { return 0, nil }

type fakeTrainRepo struct{}

func (fakeTrainRepo) FindByNumber(ctx context.Context, trainNo string) (*domain.TrainDetails, error) {
	return nil, nil
}

type fakeStaffRepo struct {
	users map[int64]*domain.StaffUser
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffUser, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFound("staff user", nil)
}

func (r *fakeStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFound("staff user", nil)
}

func (r *fakeStaffRepo) HasAccessGrant(ctx context.Context, staffID int64) (bool, error) {
	return false, nil
}

type fakeStore struct{}

func (fakeStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "http://files.local/" + key, nil
}

type testApp struct {
	app   *fiber.App
	staff *fakeStaffRepo
	token *auth.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()

	staffRepo := &fakeStaffRepo{users: map[int64]*domain.StaffUser{
		1: {ID: 1, Email: "admin@example.com", Role: domain.RoleS2Admin},
	}}
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: newFakeComplaintRepo(),
		MediaRepo:     fakeMediaRepo{},
		TrainRepo:     fakeTrainRepo{},
		StaffRepo:     staffRepo,
		Store:         fakeStore{},
		Dispatcher:    events.NewInMemoryDispatcher(),
		Logger:        logger,
	})

	tokens := auth.NewTokenManager("test-secret", 60)
	app := fiber.New()
	RegisterMiddlewares(app, logger, nil, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(service.NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60}, staffRepo)),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		RoComplaints:   handlers.NewRoComplaintsHandler(complaintService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, staffRepo),
	})
	return &testApp{app: app, staff: staffRepo, token: tokens}
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, val := range fields {
		require.NoError(t, writer.WriteField(key, val))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthLive(t *testing.T) {
	fixture := newTestApp(t)

	resp, err := fixture.app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoCreateRequiresIdentity(t *testing.T) {
	fixture := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{"train_number": "12345"})
	req := httptest.NewRequest(http.MethodPost, "/ro/complaint/add", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoCreateAndFetch(t *testing.T) {
	fixture := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{
		"name":                 "Asha",
		"mobile_number":        "9876543210",
		"train_number":         "12345",
		"complain_description": "No water in coach",
	})
	req := httptest.NewRequest(http.MethodPost, "/ro/complaint/add", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Message string `json:"message"`
		Data    struct {
			ComplainID int64 `json:"complain_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Complaint created successfully", created.Message)
	require.NotZero(t, created.Data.ComplainID)

	resp, err = fixture.app.Test(httptest.NewRequest(http.MethodGet, "/ro/complaint/get/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStaffEndpointsRequireToken(t *testing.T) {
	fixture := newTestApp(t)

	resp, err := fixture.app.Test(httptest.NewRequest(http.MethodGet, "/complaint/get/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStaffGetWithToken(t *testing.T) {
	fixture := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{
		"name":          "Asha",
		"mobile_number": "9876543210",
	})
	req := httptest.NewRequest(http.MethodPost, "/ro/complaint/add", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token, _, err := fixture.token.GenerateToken(fixture.staff.users[1])
	require.NoError(t, err)

	staffReq := httptest.NewRequest(http.MethodGet, "/complaint/get/1", nil)
	staffReq.Header.Set("Authorization", "Bearer "+token)
	resp, err = fixture.app.Test(staffReq)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStaffEndpointsRejectUnrecognizedRole(t *testing.T) {
	fixture := newTestApp(t)
	fixture.staff.users[2] = &domain.StaffUser{ID: 2, Email: "clerk@example.com", Role: "booking clerk"}

	token, _, err := fixture.token.GenerateToken(fixture.staff.users[2])
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/complaint/get/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUnknownComplaintReturnsNotFound(t *testing.T) {
	fixture := newTestApp(t)

	resp, err := fixture.app.Test(httptest.NewRequest(http.MethodGet, "/ro/complaint/get/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
