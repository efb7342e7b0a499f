package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/domain"
	"github.com/spec-kit/fleet-admin/internal/events"
	"github.com/spec-kit/fleet-admin/internal/repository"
)

// AuditService records a row for every job mutation published on the
// dispatcher and serves the admin audit query endpoint.
type AuditService struct {
	audit      repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(audit repository.AuditRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{audit: audit, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the recorder to all job events.
func (s *AuditService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventJobCreated, s.record)
	s.dispatcher.Subscribe(events.EventJobAssigned, s.record)
	s.dispatcher.Subscribe(events.EventJobStatusChanged, s.record)
}

// List serves admin audit queries.
func (s *AuditService) List(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditEntry, error) {
	return s.audit.List(ctx, filter)
}

func (s *AuditService) record(ctx context.Context, event events.Event) error {
	entry := &domain.AuditEntry{
		ActorID:    event.Actor.UserID,
		ActorEmail: event.Actor.Email,
		Action:     string(event.Type),
		EntityType: "job",
		EntityID:   event.JobID,
		Detail:     map[string]any{"payload": event.Payload},
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.logger.Error("audit insert failed",
			zap.String("action", string(event.Type)),
			zap.String("job_id", event.JobID),
			zap.Error(err))
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}
