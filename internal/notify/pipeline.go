package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Pipeline outcome statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the structured outcome of one notification attempt. It is the
// only thing the pipeline ever reports; failures never propagate as errors
// to the complaint-creation flow.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Pipeline wires resolution, aggregation, composition and dispatch for one
// complaint notification.
type Pipeline struct {
	resolver *Resolver
	composer *Composer
	mailer   Mailer
	logger   *zap.Logger
}

// NewPipeline constructs the pipeline.
func NewPipeline(resolver *Resolver, composer *Composer, mailer Mailer, logger *zap.Logger) *Pipeline {
	return &Pipeline{resolver: resolver, composer: composer, mailer: mailer, logger: logger}
}

// Run resolves the recipient set for the complaint and sends at most one
// email. Zero recipients is a successful outcome with no send attempted.
func (p *Pipeline) Run(ctx context.Context, details ComplaintDetails) Result {
	lists := p.resolver.Resolve(ctx, details)
	recipients := AggregateRecipients(lists)

	if recipients.Empty() {
		p.logger.Info("no users found to notify",
			zap.Int64("complain_id", details.ComplainID),
			zap.String("train_no", details.TrainKey()))
		return Result{Status: StatusSuccess, Message: "No users found to notify for this complaint"}
	}

	subject, body, err := p.composer.Render(details)
	if err != nil {
		p.logger.Error("notification render failed",
			zap.Int64("complain_id", details.ComplainID), zap.Error(err))
		return Result{Status: StatusError, Message: fmt.Sprintf("failed to render notification: %v", err)}
	}

	email := OutboundEmail{
		Subject: subject,
		Body:    body,
		To:      recipients.Primary(),
		Cc:      recipients.Copies(),
	}
	if err := p.mailer.Send(ctx, email); err != nil {
		p.logger.Error("notification send failed",
			zap.Int64("complain_id", details.ComplainID),
			zap.String("to", email.To),
			zap.Error(err))
		return Result{Status: StatusError, Message: fmt.Sprintf("failed to send notification: %v", err)}
	}

	p.logger.Info("complaint notification sent",
		zap.Int64("complain_id", details.ComplainID),
		zap.String("to", email.To),
		zap.Int("cc", len(email.Cc)))
	return Result{Status: StatusSuccess, Message: fmt.Sprintf("Notification sent to %d recipients", recipients.Len())}
}
