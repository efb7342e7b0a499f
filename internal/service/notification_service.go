package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/events"
	"github.com/spec-kit/fleet-admin/internal/repository"
)

// NotificationService turns job events into in-app notifications and
// serves the per-user notification endpoints.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventJobAssigned, n.handleJobAssigned)
	n.dispatcher.Subscribe(events.EventJobStatusChanged, n.handleJobStatusChanged)
}

// ListForUser pages through a user's notifications.
func (n *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return n.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead flags one notification as read for its owner.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return n.notifications.MarkRead(ctx, id, userID)
}

func (n *NotificationService) handleJobAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.JobAssignedPayload)
	if !ok {
		return nil
	}
	return n.create(ctx, &domain.Notification{
		UserID: payload.CreatedBy,
		Kind:   domain.NotificationJobAssigned,
		Title:  fmt.Sprintf("Job %s assigned", payload.Reference),
		Body:   fmt.Sprintf("A driver was assigned to job %s.", payload.Reference),
	})
}

func (n *NotificationService) handleJobStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.JobStatusChangedPayload)
	if !ok {
		return nil
	}
	return n.create(ctx, &domain.Notification{
		UserID: payload.CreatedBy,
		Kind:   domain.NotificationJobStatusChanged,
		Title:  fmt.Sprintf("Job %s is now %s", payload.Reference, payload.NewStatus),
		Body:   fmt.Sprintf("Job %s moved from %s to %s.", payload.Reference, payload.OldStatus, payload.NewStatus),
	})
}

func (n *NotificationService) create(ctx context.Context, notification *domain.Notification) error {
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("notification insert failed",
			zap.String("user_id", notification.UserID),
			zap.Error(err))
		return err
	}
	return nil
}
