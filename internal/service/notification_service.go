package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/notify"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/observability"
)

// pipelineTimeout bounds one detached notification run end to end,
// including directory queries and the outbound send.
const pipelineTimeout = 2 * time.Minute

// NotificationService bridges complaint events to the notification
// pipeline. The pipeline runs detached: the request path that created the
// complaint never waits for it and never observes its result.
type NotificationService struct {
	dispatcher events.Dispatcher
	pipeline   *notify.Pipeline
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, pipeline *notify.Pipeline, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		pipeline:   pipeline,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to complaint events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
}

func (n *NotificationService) handleComplaintCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintCreatedPayload)
	if !ok {
		return nil
	}
	if payload.Source != events.SourcePassenger {
		n.logger.Debug("skipping notification for staff-created complaint",
			zap.Int64("complain_id", event.ComplainID))
		return nil
	}

	// detached from the request context on purpose: the HTTP response must
	// not wait for directory queries or the SMTP round trip
	go func(details notify.ComplaintDetails) {
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		result := n.pipeline.Run(ctx, details)
		n.metrics.RecordNotification(result.Status)
		n.logger.Info("notification pipeline finished",
			zap.Int64("complain_id", details.ComplainID),
			zap.String("status", result.Status),
			zap.String("message", result.Message))
	}(payload.Details)
	return nil
}
