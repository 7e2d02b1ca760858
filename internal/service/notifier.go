package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/mail"
	"github.com/coad-fablab/printlab-api/pkg/config"
	"github.com/coad-fablab/printlab-api/pkg/jobs"
)

// notifier is the async email dispatch surface used by services.
type notifier interface {
	Notify(msg mail.Message)
}

// MailNotifier delivers notification emails through a background queue
// so request handlers never block on SMTP.
type MailNotifier struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewMailNotifier wires the mailer behind a worker queue.
func NewMailNotifier(mailer *mail.Mailer, cfg config.MailerQueueConfig, logger *zap.Logger) *MailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &MailNotifier{logger: logger}
	n.queue = jobs.NewQueue("mail", func(ctx context.Context, task jobs.Task) error {
		msg, ok := task.Payload.(mail.Message)
		if !ok {
			logger.Error("mail task has unexpected payload", zap.String("task_id", task.ID))
			return nil
		}
		return mailer.Send(ctx, msg)
	}, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return n
}

// Start launches the delivery workers.
func (n *MailNotifier) Start(ctx context.Context) {
	n.queue.Start(ctx)
}

// Stop drains the workers.
func (n *MailNotifier) Stop() {
	n.queue.Stop()
}

// Notify enqueues a message. Failures are logged, not surfaced, since
// notification email must never fail the originating request.
func (n *MailNotifier) Notify(msg mail.Message) {
	err := n.queue.Enqueue(jobs.Task{
		ID:      uuid.NewString(),
		Kind:    "email",
		Payload: msg,
	})
	if err != nil {
		n.logger.Error("failed to enqueue notification email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}
}

// noopNotifier drops messages, used in tests.
type noopNotifier struct{}

func (noopNotifier) Notify(mail.Message) {}
