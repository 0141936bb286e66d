package announcement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
)

var (
	ErrMissingFields     = errors.New("title, description and content are required")
	ErrInvalidVisibility = errors.New("invalid visibility value")
	ErrInvalidStatus     = errors.New("invalid announcement status")
)

type Service interface {
	Create(ctx context.Context, author *domain.User, input domain.CreateAnnouncementInput) (*domain.Announcement, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	ListForRole(ctx context.Context, role domain.UserRole, params domain.PaginationParams) (domain.PaginatedResponse[domain.Announcement], error)
	ListMine(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Announcement], error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateAnnouncementInput) (*domain.Announcement, error)
	Archive(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
}

type service struct {
	annRepo repository.AnnouncementRepository
}

func NewService(annRepo repository.AnnouncementRepository) Service {
	return &service{annRepo: annRepo}
}

// Create publishes immediately. Admins can always publish; officers
// need the announcement permission flag granted by an admin.
func (s *service) Create(ctx context.Context, author *domain.User, input domain.CreateAnnouncementInput) (*domain.Announcement, error) {
	switch author.Role {
	case domain.RoleAdmin:
	case domain.RoleOfficer:
		if !author.CanCreateAnnouncement {
			return nil, domain.ErrNoAnnouncementRights
		}
	default:
		return nil, domain.ErrNoAnnouncementRights
	}

	if input.Title == "" || input.Description == "" || input.Content == "" {
		return nil, ErrMissingFields
	}
	visibleTo := input.VisibleTo
	if visibleTo == "" {
		visibleTo = domain.VisibleToAll
	}
	if !visibleTo.IsValid() {
		return nil, ErrInvalidVisibility
	}

	now := time.Now()
	ann := &domain.Announcement{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		Image:        input.Image,
		AuthorID:     author.ID,
		AuthorRole:   author.Role,
		DepartmentID: author.DepartmentID,
		Status:       domain.AnnouncementPublished,
		VisibleTo:    visibleTo,
		PublishedAt:  &now,
	}
	if err := s.annRepo.Create(ctx, ann); err != nil {
		return nil, err
	}
	return s.annRepo.GetByID(ctx, ann.ID)
}

// Get returns an announcement and counts the view.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	ann, err := s.annRepo.IncrementViewAndGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if ann == nil {
		return nil, domain.ErrAnnouncementNotFound
	}
	return ann, nil
}

// ListForRole returns published announcements the given role may see.
// Officers see "all" and "officers", citizens see "all" and "citizens",
// admins see everything.
func (s *service) ListForRole(ctx context.Context, role domain.UserRole, params domain.PaginationParams) (domain.PaginatedResponse[domain.Announcement], error) {
	params.Validate()

	var visibleTo []domain.Visibility
	switch role {
	case domain.RoleAdmin:
		visibleTo = []domain.Visibility{domain.VisibleToAll, domain.VisibleToOfficers, domain.VisibleToCitizens}
	case domain.RoleOfficer:
		visibleTo = []domain.Visibility{domain.VisibleToAll, domain.VisibleToOfficers}
	default:
		visibleTo = []domain.Visibility{domain.VisibleToAll, domain.VisibleToCitizens}
	}

	anns, total, err := s.annRepo.ListPublished(ctx, visibleTo, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Announcement]{}, err
	}
	return domain.NewPaginatedResponse(anns, params.Page, params.Limit, total), nil
}

func (s *service) ListMine(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Announcement], error) {
	params.Validate()
	anns, total, err := s.annRepo.ListByAuthor(ctx, authorID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Announcement]{}, err
	}
	return domain.NewPaginatedResponse(anns, params.Page, params.Limit, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateAnnouncementInput) (*domain.Announcement, error) {
	ann, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		ann.Title = *input.Title
	}
	if input.Description != nil {
		ann.Description = *input.Description
	}
	if input.Content != nil {
		ann.Content = *input.Content
	}
	if input.Image != nil {
		ann.Image = input.Image
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if *input.Status == domain.AnnouncementPublished && ann.PublishedAt == nil {
			now := time.Now()
			ann.PublishedAt = &now
		}
		ann.Status = *input.Status
	}
	if input.VisibleTo != nil {
		if !input.VisibleTo.IsValid() {
			return nil, ErrInvalidVisibility
		}
		ann.VisibleTo = *input.VisibleTo
	}

	if err := s.annRepo.Update(ctx, ann); err != nil {
		return nil, err
	}
	return s.annRepo.GetByID(ctx, ann.ID)
}

func (s *service) Archive(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Announcement, error) {
	ann, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	ann.Status = domain.AnnouncementArchived
	if err := s.annRepo.Update(ctx, ann); err != nil {
		return nil, err
	}
	return ann, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.annRepo.Delete(ctx, id)
}

// authorize loads the announcement and checks the actor is its author
// or an admin.
func (s *service) authorize(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Announcement, error) {
	ann, err := s.annRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ann == nil {
		return nil, domain.ErrAnnouncementNotFound
	}
	if actor.Role != domain.RoleAdmin && ann.AuthorID != actor.ID {
		return nil, domain.ErrAnnouncementForbidden
	}
	return ann, nil
}
