package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/config"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/notify"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/observability"
)

type memDirectoryRepo struct {
	warRoom []domain.StaffUser
	byRole  map[domain.StaffRole][]domain.StaffUser
	grants  []domain.TrainAccessGrant
}

func (r *memDirectoryRepo) WarRoomUsersInDepot(ctx context.Context, depot string) ([]domain.StaffUser, error) {
	return r.warRoom, nil
}

func (r *memDirectoryRepo) StaffByRole(ctx context.Context, role domain.StaffRole) ([]domain.StaffUser, error) {
	return r.byRole[role], nil
}

func (r *memDirectoryRepo) TrainAccessGrants(ctx context.Context) ([]domain.TrainAccessGrant, error) {
	return r.grants, nil
}

type countingMailer struct {
	mu   sync.Mutex
	sent []notify.OutboundEmail
}

func (m *countingMailer) Send(ctx context.Context, email notify.OutboundEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

func (m *countingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newNotificationFixture(t *testing.T) (events.Dispatcher, *countingMailer, *observability.Metrics) {
	t.Helper()
	logger := zap.NewNop()
	trains := &memTrainRepo{trains: map[string]*domain.TrainDetails{
		"12345": {ID: 1, TrainNo: "12345", Depot: "DELHI"},
	}}
	directory := &memDirectoryRepo{
		warRoom: []domain.StaffUser{{ID: 1, Email: "warroom@example.com", Depot: "DELHI"}},
	}
	mailer := &countingMailer{}
	pipeline := notify.NewPipeline(
		notify.NewResolver(trains, directory, logger),
		notify.NewComposer(config.MailConfig{}, config.EnvProd),
		mailer,
		logger,
	)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	NewNotificationService(dispatcher, pipeline, metrics, logger).RegisterHandlers()
	return dispatcher, mailer, metrics
}

func TestPassengerComplaintTriggersNotification(t *testing.T) {
	dispatcher, mailer, metrics := newNotificationFixture(t)

	dispatcher.Publish(context.Background(), events.Event{
		Type:       events.EventComplaintCreated,
		ComplainID: 1,
		Payload: events.ComplaintCreatedPayload{
			Source: events.SourcePassenger,
			Details: notify.ComplaintDetails{
				ComplainID:  1,
				TrainNumber: "12345",
				CreatedAt:   time.Date(2025, 7, 9, 10, 0, 0, 0, time.UTC),
			},
		},
	})

	require.Eventually(t, func() bool {
		return mailer.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return metrics.NotificationCount(notify.StatusSuccess) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStaffComplaintDoesNotTriggerNotification(t *testing.T) {
	dispatcher, mailer, metrics := newNotificationFixture(t)

	dispatcher.Publish(context.Background(), events.Event{
		Type:       events.EventComplaintCreated,
		ComplainID: 2,
		Payload: events.ComplaintCreatedPayload{
			Source: events.SourceStaff,
			Details: notify.ComplaintDetails{
				ComplainID:  2,
				TrainNumber: "12345",
				CreatedAt:   time.Date(2025, 7, 9, 10, 0, 0, 0, time.UTC),
			},
		},
	})

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, mailer.count())
	assert.Equal(t, int64(0), metrics.NotificationCount(notify.StatusSuccess))
}
