package department

import (
	"context"
	"log"

	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
)

type Service interface {
	EnsureSeedData(ctx context.Context) error
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
}

type service struct {
	deptRepo repository.DepartmentRepository
}

func NewService(deptRepo repository.DepartmentRepository) Service {
	return &service{deptRepo: deptRepo}
}

// EnsureSeedData inserts the county's standard departments on first
// boot. It is a no-op once any department exists, so restarting the
// server never duplicates rows.
func (s *service) EnsureSeedData(ctx context.Context) error {
	count, err := s.deptRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range domain.SeedDepartments {
		dept := seed
		dept.ID = uuid.New()
		dept.IsActive = true
		if err := s.deptRepo.Create(ctx, &dept); err != nil {
			return err
		}
	}
	log.Printf("seeded %d departments", len(domain.SeedDepartments))
	return nil
}

func (s *service) List(ctx context.Context) ([]domain.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrDepartmentNotFound
	}
	return dept, nil
}
