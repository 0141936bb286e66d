package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Issue        IssueRepository
	Department   DepartmentRepository
	Announcement AnnouncementRepository
	Notification NotificationRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Issue:        NewIssueRepository(db),
		Department:   NewDepartmentRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
	}
}
