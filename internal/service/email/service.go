package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/resend/resend-go/v3"

	"e-county-api/internal/config"
	"e-county-api/internal/domain"
)

// Service renders and sends transactional email. Delivery is best
// effort: callers fire these from detached goroutines and log failures.
type Service interface {
	SendIssueConfirmation(ctx context.Context, toEmail, name string, issue *domain.Issue) error
	SendIssueAssignment(ctx context.Context, toEmail, name string, issue *domain.Issue) error
	SendStatusUpdate(ctx context.Context, toEmail, name string, issue *domain.Issue, status domain.IssueStatus, comment string) error
	SendWelcome(ctx context.Context, toEmail, name string, role domain.UserRole) error
	SendAccountCredentials(ctx context.Context, toEmail, name, email, tempPassword string) error
	SendAnnouncementPermission(ctx context.Context, toEmail, name string, enabled bool) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("E-County Kisii <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendIssueConfirmation(ctx context.Context, toEmail, name string, issue *domain.Issue) error {
	data := struct {
		Title    string
		Name     string
		IssueID  string
		Category string
		Status   string
		Link     string
	}{
		Title:    "Issue Report Submitted Successfully",
		Name:     name,
		IssueID:  issue.ID.String(),
		Category: string(issue.Category),
		Status:   string(issue.Status),
		Link:     fmt.Sprintf("%s/issues/%s", s.config.FrontendURL, issue.ID),
	}
	return s.sendEmail(toEmail, "Issue Report Submitted Successfully", "issue_confirmation.html", data)
}

func (s *service) SendIssueAssignment(ctx context.Context, toEmail, name string, issue *domain.Issue) error {
	data := struct {
		Title       string
		Name        string
		IssueTitle  string
		Category    string
		Description string
		Address     string
		Link        string
	}{
		Title:       "New Issue Assignment",
		Name:        name,
		IssueTitle:  issue.Title,
		Category:    string(issue.Category),
		Description: issue.Description,
		Address:     issue.Address,
		Link:        fmt.Sprintf("%s/dashboard/officer", s.config.FrontendURL),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("New Issue Assigned: %s", issue.Title), "issue_assignment.html", data)
}

func (s *service) SendStatusUpdate(ctx context.Context, toEmail, name string, issue *domain.Issue, status domain.IssueStatus, comment string) error {
	if comment == "" {
		comment = "No additional comment"
	}
	data := struct {
		Title   string
		Name    string
		Status  string
		Comment string
		Link    string
	}{
		Title:   "Issue Status Update",
		Name:    name,
		Status:  string(status),
		Comment: comment,
		Link:    fmt.Sprintf("%s/issues/%s", s.config.FrontendURL, issue.ID),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Issue Update: %s", issue.Title), "status_update.html", data)
}

func (s *service) SendWelcome(ctx context.Context, toEmail, name string, role domain.UserRole) error {
	data := struct {
		Title string
		Name  string
		Role  string
		Link  string
	}{
		Title: "Welcome to E-County Kisii",
		Name:  name,
		Role:  string(role),
		Link:  fmt.Sprintf("%s/login", s.config.FrontendURL),
	}
	return s.sendEmail(toEmail, "Welcome to E-County Kisii - Issue Reporting System", "welcome.html", data)
}

func (s *service) SendAccountCredentials(ctx context.Context, toEmail, name, email, tempPassword string) error {
	data := struct {
		Title        string
		Name         string
		Email        string
		TempPassword string
		Link         string
	}{
		Title:        "E-County System Account Created",
		Name:         name,
		Email:        email,
		TempPassword: tempPassword,
		Link:         fmt.Sprintf("%s/login", s.config.FrontendURL),
	}
	return s.sendEmail(toEmail, "E-County System Account Created", "credentials.html", data)
}

func (s *service) SendAnnouncementPermission(ctx context.Context, toEmail, name string, enabled bool) error {
	action, detail := "Disabled", "You can no longer create announcements."
	if enabled {
		action = "Enabled"
		detail = "You can now log in and create announcements for the county."
	}
	data := struct {
		Title       string
		Name        string
		Action      string
		ActionLower string
		Detail      string
	}{
		Title:       "Announcement Permission Update",
		Name:        name,
		Action:      action,
		ActionLower: strings.ToLower(action),
		Detail:      detail,
	}
	return s.sendEmail(toEmail, "Announcement Permission Update", "announcement_permission.html", data)
}
