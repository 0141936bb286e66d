package handler

import "e-county-api/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Issue        *IssueHandler
	Department   *DepartmentHandler
	Announcement *AnnouncementHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Issue:        NewIssueHandler(services.Issue, services.Media),
		Department:   NewDepartmentHandler(services.Department),
		Announcement: NewAnnouncementHandler(services.Announcement),
		Notification: NewNotificationHandler(services.Notification),
		Admin:        NewAdminHandler(services.User, services.Issue, services.Dashboard, services.Export),
	}
}
