package export

import (
	"context"
	"strings"
	"time"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
)

type Service interface {
	ExportCSV(ctx context.Context) (string, error)
	ExportPDFData(ctx context.Context) (*PDFData, error)
}

// PDFData is the payload the frontend renders into a PDF report. The
// server ships rows and metadata; layout happens client side.
type PDFData struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	TotalIssues int       `json:"total_issues"`
	Rows        []PDFRow  `json:"rows"`
}

type PDFRow struct {
	IssueID    string `json:"issue_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	ReportedBy string `json:"reported_by"`
	AssignedTo string `json:"assigned_to"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}

type service struct {
	issueRepo repository.IssueRepository
}

func NewService(issueRepo repository.IssueRepository) Service {
	return &service{issueRepo: issueRepo}
}

var csvHeader = []string{
	"Issue ID", "Title", "Category", "Status", "Priority",
	"Reported By", "Assigned To", "Department", "Created At",
}

// ExportCSV renders every issue as CSV. All fields are quoted so
// titles containing commas or newlines survive spreadsheet import.
func (s *service) ExportCSV(ctx context.Context) (string, error) {
	issues, err := s.issueRepo.ListAll(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeRow(&b, csvHeader)
	for i := range issues {
		writeRow(&b, rowFields(&issues[i]))
	}
	return b.String(), nil
}

func (s *service) ExportPDFData(ctx context.Context) (*PDFData, error) {
	issues, err := s.issueRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]PDFRow, 0, len(issues))
	for i := range issues {
		f := rowFields(&issues[i])
		rows = append(rows, PDFRow{
			IssueID:    f[0],
			Title:      f[1],
			Category:   f[2],
			Status:     f[3],
			Priority:   f[4],
			ReportedBy: f[5],
			AssignedTo: f[6],
			Department: f[7],
			CreatedAt:  f[8],
		})
	}

	return &PDFData{
		Title:       "Issue Report",
		GeneratedAt: time.Now(),
		TotalIssues: len(rows),
		Rows:        rows,
	}, nil
}

func rowFields(issue *domain.Issue) []string {
	reporter := ""
	if issue.Reporter != nil {
		reporter = issue.Reporter.FirstName + " " + issue.Reporter.LastName
	}
	assignee := "Unassigned"
	if issue.Assignee != nil {
		assignee = issue.Assignee.FirstName + " " + issue.Assignee.LastName
	}
	department := "N/A"
	if issue.Department != nil {
		department = issue.Department.Name
	}

	return []string{
		issue.ID.String(),
		issue.Title,
		string(issue.Category),
		string(issue.Status),
		string(issue.Priority),
		reporter,
		assignee,
		department,
		issue.CreatedAt.Format(time.RFC3339),
	}
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
