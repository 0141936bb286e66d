package unit_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"e-county-api/internal/domain"
	"e-county-api/internal/service/export"
	"e-county-api/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleIssues() []domain.Issue {
	deptName := "Waste Management"
	return []domain.Issue{
		{
			ID:        uuid.New(),
			Title:     `Overflowing bins, "urgent"`,
			Category:  domain.CategoryWaste,
			Status:    domain.StatusInProgress,
			Priority:  domain.PriorityHigh,
			CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
			Reporter:  &domain.UserRef{FirstName: "Jane", LastName: "Moraa"},
			Assignee:  &domain.UserRef{FirstName: "Peter", LastName: "Ongeri"},
			Department: &domain.DepartmentRef{
				ID:   uuid.New(),
				Name: deptName,
			},
		},
		{
			ID:        uuid.New(),
			Title:     "Street light out",
			Category:  domain.CategoryLighting,
			Status:    domain.StatusPending,
			Priority:  domain.PriorityMedium,
			CreatedAt: time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC),
			Reporter:  &domain.UserRef{FirstName: "Sam", LastName: "Nyang'au"},
		},
	}
}

func TestExportService_CSV(t *testing.T) {
	ctx := context.Background()
	mockIssueRepo := new(mocks.IssueRepository)
	svc := export.NewService(mockIssueRepo)

	mockIssueRepo.On("ListAll", ctx).Return(sampleIssues(), nil).Once()

	csvData, err := svc.ExportCSV(ctx)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(csvData, "\n"), "\n")
	assert.Len(t, lines, 3, "header plus one row per issue")

	assert.Equal(t,
		`"Issue ID","Title","Category","Status","Priority","Reported By","Assigned To","Department","Created At"`,
		lines[0])

	// Every field quoted, embedded quotes doubled.
	assert.Contains(t, lines[1], `"Overflowing bins, ""urgent"""`)
	assert.Contains(t, lines[1], `"Jane Moraa"`)
	assert.Contains(t, lines[1], `"Peter Ongeri"`)
	assert.Contains(t, lines[1], `"Waste Management"`)

	// Unassigned issues fall back to placeholders.
	assert.Contains(t, lines[2], `"Unassigned"`)
	assert.Contains(t, lines[2], `"N/A"`)

	for _, line := range lines {
		assert.Equal(t, 9, countCSVFields(line), "line %q", line)
		assert.True(t, strings.HasPrefix(line, `"`))
		assert.True(t, strings.HasSuffix(line, `"`))
	}
}

func TestExportService_PDFData(t *testing.T) {
	ctx := context.Background()
	mockIssueRepo := new(mocks.IssueRepository)
	svc := export.NewService(mockIssueRepo)

	mockIssueRepo.On("ListAll", ctx).Return(sampleIssues(), nil).Once()

	data, err := svc.ExportPDFData(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, data.TotalIssues)
	assert.Len(t, data.Rows, 2)
	assert.Equal(t, "Jane Moraa", data.Rows[0].ReportedBy)
	assert.Equal(t, "Unassigned", data.Rows[1].AssignedTo)
	assert.Equal(t, "N/A", data.Rows[1].Department)
}

// countCSVFields counts top-level comma separated fields, ignoring
// commas inside quoted values.
func countCSVFields(line string) int {
	fields := 1
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields++
			}
		}
	}
	return fields
}
