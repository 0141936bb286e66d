package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIssueNotFound       = errors.New("issue not found")
	ErrNotAssignedOfficer  = errors.New("you are not assigned to this issue")
	ErrFeedbackExists      = errors.New("feedback already submitted for this issue")
	ErrIssueNotResolved    = errors.New("feedback can only be submitted on resolved issues")
)

type Issue struct {
	ID           uuid.UUID      `json:"id" db:"issue_id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Category     IssueCategory  `json:"category" db:"category"`
	Status       IssueStatus    `json:"status" db:"status"`
	Priority     IssuePriority  `json:"priority" db:"priority"`
	ReportedBy   uuid.UUID      `json:"reported_by" db:"reported_by"`
	AssignedTo   *uuid.UUID     `json:"assigned_to" db:"assigned_to"`
	DepartmentID *uuid.UUID     `json:"department_id" db:"department_id"`
	Longitude    float64        `json:"longitude" db:"longitude"`
	Latitude     float64        `json:"latitude" db:"latitude"`
	Address      string         `json:"address" db:"address"`
	Photos       []IssuePhoto   `json:"photos,omitempty"`
	Updates      []IssueUpdate  `json:"updates,omitempty"`
	Feedback     *IssueFeedback `json:"feedback,omitempty"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	ResolvedAt   *time.Time     `json:"resolved_at,omitempty" db:"resolved_at"`

	Reporter   *UserRef       `json:"reporter,omitempty"`
	Assignee   *UserRef       `json:"assignee,omitempty"`
	Department *DepartmentRef `json:"department,omitempty"`
}

type IssuePhoto struct {
	URL        string    `json:"url" db:"url"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// IssueUpdate is one entry of the append-only audit trail. Entries are
// never edited or removed once written.
type IssueUpdate struct {
	ID        uuid.UUID    `json:"id" db:"update_id"`
	IssueID   uuid.UUID    `json:"issue_id" db:"issue_id"`
	Status    *IssueStatus `json:"status,omitempty" db:"status"`
	Comment   string       `json:"comment" db:"comment"`
	UpdatedBy uuid.UUID    `json:"updated_by" db:"updated_by"`
	Photos    []string     `json:"photos,omitempty"`
	Timestamp time.Time    `json:"timestamp" db:"created_at"`

	Author *UserRef `json:"author,omitempty"`
}

type IssueFeedback struct {
	Rating      int        `json:"rating" db:"rating"`
	Comment     string     `json:"comment" db:"comment"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`
}

// UserRef is the trimmed user projection embedded in issue responses.
type UserRef struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
}

type DepartmentRef struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type IssueCategory string

const (
	CategoryRoads     IssueCategory = "roads"
	CategoryWater     IssueCategory = "water"
	CategoryWaste     IssueCategory = "waste"
	CategoryDrainage  IssueCategory = "drainage"
	CategoryLighting  IssueCategory = "lighting"
	CategoryHealth    IssueCategory = "health"
	CategoryEducation IssueCategory = "education"
	CategoryOther     IssueCategory = "other"
)

func (c IssueCategory) IsValid() bool {
	switch c {
	case CategoryRoads, CategoryWater, CategoryWaste, CategoryDrainage,
		CategoryLighting, CategoryHealth, CategoryEducation, CategoryOther:
		return true
	default:
		return false
	}
}

type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusVerified   IssueStatus = "verified"
	StatusAssigned   IssueStatus = "assigned"
	StatusEnRoute    IssueStatus = "en_route"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
)

func (s IssueStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusAssigned, StatusEnRoute,
		StatusInProgress, StatusResolved:
		return true
	default:
		return false
	}
}

type IssuePriority string

const (
	PriorityLow      IssuePriority = "low"
	PriorityMedium   IssuePriority = "medium"
	PriorityHigh     IssuePriority = "high"
	PriorityCritical IssuePriority = "critical"
)

func (p IssuePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type CreateIssueInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    IssueCategory `json:"category"`
	Longitude   *float64      `json:"longitude"`
	Latitude    *float64      `json:"latitude"`
	Address     string        `json:"address"`
	Photos      []string      `json:"photos"`
}

// Validate checks the required fields and coordinate ranges. Coordinates
// must be finite and within valid geographic bounds.
func (in *CreateIssueInput) Validate() error {
	if in.Title == "" || in.Description == "" || in.Category == "" || in.Address == "" ||
		in.Longitude == nil || in.Latitude == nil {
		return errors.New("please provide all required fields")
	}
	if !in.Category.IsValid() {
		return errors.New("invalid category")
	}
	lng, lat := *in.Longitude, *in.Latitude
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errors.New("invalid coordinates provided")
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return errors.New("coordinates out of range")
	}
	return nil
}

type UpdateIssueStatusInput struct {
	Status  *IssueStatus `json:"status"`
	Comment string       `json:"comment"`
	Photos  []string     `json:"photos"`
}

type AddCommentInput struct {
	Comment string   `json:"comment"`
	Photos  []string `json:"photos"`
}

type SubmitFeedbackInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type IssueFilter struct {
	Status     *IssueStatus
	Category   *IssueCategory
	ReportedBy *uuid.UUID
}

// OfficerStats is the workload summary shown on the officer dashboard.
type OfficerStats struct {
	Total      int64 `json:"total"`
	EnRoute    int64 `json:"en_route"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Pending    int64 `json:"pending"`
}
