package domain

import "time"

// NotificationKind classifies in-app notifications.
type NotificationKind string

const (
	NotificationJobAssigned      NotificationKind = "JOB_ASSIGNED"
	NotificationJobStatusChanged NotificationKind = "JOB_STATUS_CHANGED"
	NotificationSystem           NotificationKind = "SYSTEM"
)

// Notification is an in-app message addressed to a user.
type Notification struct {
	ID        string
	UserID    string
	Kind      NotificationKind
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
