package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	Recipient uuid.UUID        `json:"recipient" db:"recipient"`
	Type      NotificationType `json:"type" db:"type"`
	IssueID   *uuid.UUID       `json:"issue_id,omitempty" db:"issue_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	EmailSent bool             `json:"email_sent" db:"email_sent"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifIssueSubmitted    NotificationType = "issue_submitted"
	NotifIssueAssigned     NotificationType = "issue_assigned"
	NotifStatusUpdated     NotificationType = "status_updated"
	NotifResolved          NotificationType = "resolved"
	NotifFeedbackRequested NotificationType = "feedback_requested"
)
