package worker

import (
	"github.com/spec-kit/fleet-admin/internal/service"
)

// StartEventWorkers registers the audit recorder and the notification
// writer on the shared dispatcher.
func StartEventWorkers(auditService *service.AuditService, notificationService *service.NotificationService) {
	if auditService != nil {
		auditService.RegisterHandlers()
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
}
