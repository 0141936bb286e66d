package routing

import (
	"context"
	"log"

	"github.com/google/uuid"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
)

// fallbackDepartment receives every category without an explicit
// mapping.
const fallbackDepartment = "Roads & Transport"

var categoryDepartments = map[domain.IssueCategory]string{
	domain.CategoryRoads:     "Roads & Transport",
	domain.CategoryWater:     "Water & Sanitation",
	domain.CategoryWaste:     "Waste Management",
	domain.CategoryDrainage:  "Waste Management",
	domain.CategoryLighting:  "Electricity",
	domain.CategoryHealth:    "Health",
	domain.CategoryEducation: "Education",
	domain.CategoryOther:     fallbackDepartment,
}

// DepartmentForCategory maps a report category to its owning department
// name. Unknown categories fall back to Roads & Transport; there is no
// error case.
func DepartmentForCategory(category domain.IssueCategory) string {
	if name, ok := categoryDepartments[category]; ok {
		return name
	}
	return fallbackDepartment
}

// Service resolves a report category to a department and, when one is
// available, a field officer to handle it.
type Service interface {
	// Resolve never fails: any lookup problem leaves the issue
	// unrouted (nil, nil) and the caller treats it as "pending".
	Resolve(ctx context.Context, category domain.IssueCategory) (departmentID, officerID *uuid.UUID)
}

type service struct {
	deptRepo repository.DepartmentRepository
	userRepo repository.UserRepository
}

func NewService(deptRepo repository.DepartmentRepository, userRepo repository.UserRepository) Service {
	return &service{
		deptRepo: deptRepo,
		userRepo: userRepo,
	}
}

func (s *service) Resolve(ctx context.Context, category domain.IssueCategory) (*uuid.UUID, *uuid.UUID) {
	name := DepartmentForCategory(category)

	dept, err := s.deptRepo.GetActiveByName(ctx, name)
	if err != nil {
		log.Printf("routing: department lookup failed for category %q: %v", category, err)
		return nil, nil
	}
	if dept == nil {
		log.Printf("routing: no active department named %q for category %q", name, category)
		return nil, nil
	}

	officer, err := s.userRepo.FirstActiveOfficer(ctx, dept.ID)
	if err != nil {
		log.Printf("routing: officer lookup failed for department %q: %v", name, err)
		return &dept.ID, nil
	}
	if officer == nil {
		return &dept.ID, nil
	}
	return &dept.ID, &officer.ID
}
