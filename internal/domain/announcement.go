package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAnnouncementNotFound  = errors.New("announcement not found")
	ErrAnnouncementForbidden = errors.New("not authorized to modify this announcement")
	ErrNoAnnouncementRights  = errors.New("you do not have permission to create announcements")
)

type Announcement struct {
	ID           uuid.UUID          `json:"id" db:"announcement_id"`
	Title        string             `json:"title" db:"title"`
	Description  string             `json:"description" db:"description"`
	Content      string             `json:"content" db:"content"`
	Image        *string            `json:"image,omitempty" db:"image"`
	AuthorID     uuid.UUID          `json:"author_id" db:"author_id"`
	AuthorRole   UserRole           `json:"author_role" db:"author_role"`
	DepartmentID *uuid.UUID         `json:"department_id" db:"department_id"`
	Status       AnnouncementStatus `json:"status" db:"status"`
	VisibleTo    Visibility         `json:"visible_to" db:"visible_to"`
	ViewCount    int64              `json:"view_count" db:"view_count"`
	PublishedAt  *time.Time         `json:"published_at,omitempty" db:"published_at"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`

	Author *UserRef `json:"author,omitempty"`
}

type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"
	AnnouncementPublished AnnouncementStatus = "published"
	AnnouncementArchived  AnnouncementStatus = "archived"
)

func (s AnnouncementStatus) IsValid() bool {
	switch s {
	case AnnouncementDraft, AnnouncementPublished, AnnouncementArchived:
		return true
	default:
		return false
	}
}

type Visibility string

const (
	VisibleToAll      Visibility = "all"
	VisibleToOfficers Visibility = "officers"
	VisibleToCitizens Visibility = "citizens"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibleToAll, VisibleToOfficers, VisibleToCitizens:
		return true
	default:
		return false
	}
}

type CreateAnnouncementInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Image       *string    `json:"image"`
	VisibleTo   Visibility `json:"visible_to"`
}

type UpdateAnnouncementInput struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Content     *string             `json:"content"`
	Image       *string             `json:"image"`
	Status      *AnnouncementStatus `json:"status"`
	VisibleTo   *Visibility         `json:"visible_to"`
}
