package unit_test

import (
	"context"
	"errors"
	"testing"

	"e-county-api/internal/domain"
	"e-county-api/internal/service/routing"
	"e-county-api/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDepartmentForCategory(t *testing.T) {
	cases := map[domain.IssueCategory]string{
		domain.CategoryRoads:     "Roads & Transport",
		domain.CategoryWater:     "Water & Sanitation",
		domain.CategoryWaste:     "Waste Management",
		domain.CategoryDrainage:  "Waste Management",
		domain.CategoryLighting:  "Electricity",
		domain.CategoryHealth:    "Health",
		domain.CategoryEducation: "Education",
		domain.CategoryOther:     "Roads & Transport",
	}

	for category, want := range cases {
		assert.Equal(t, want, routing.DepartmentForCategory(category), "category %s", category)
	}

	// Unknown categories use the fallback.
	assert.Equal(t, "Roads & Transport", routing.DepartmentForCategory(domain.IssueCategory("potholes")))
}

func TestRoutingService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("department and officer found", func(t *testing.T) {
		mockDeptRepo := new(mocks.DepartmentRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := routing.NewService(mockDeptRepo, mockUserRepo)

		dept := &domain.Department{ID: uuid.New(), Name: "Water & Sanitation", IsActive: true}
		officer := &domain.User{ID: uuid.New(), Role: domain.RoleOfficer, IsActive: true}

		mockDeptRepo.On("GetActiveByName", ctx, "Water & Sanitation").Return(dept, nil).Once()
		mockUserRepo.On("FirstActiveOfficer", ctx, dept.ID).Return(officer, nil).Once()

		deptID, officerID := svc.Resolve(ctx, domain.CategoryWater)

		assert.NotNil(t, deptID)
		assert.Equal(t, dept.ID, *deptID)
		assert.NotNil(t, officerID)
		assert.Equal(t, officer.ID, *officerID)
	})

	t.Run("department found but no officer", func(t *testing.T) {
		mockDeptRepo := new(mocks.DepartmentRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := routing.NewService(mockDeptRepo, mockUserRepo)

		dept := &domain.Department{ID: uuid.New(), Name: "Electricity", IsActive: true}
		mockDeptRepo.On("GetActiveByName", ctx, "Electricity").Return(dept, nil).Once()
		mockUserRepo.On("FirstActiveOfficer", ctx, dept.ID).Return(nil, nil).Once()

		deptID, officerID := svc.Resolve(ctx, domain.CategoryLighting)

		assert.NotNil(t, deptID)
		assert.Nil(t, officerID)
	})

	t.Run("lookup failure resolves to unrouted", func(t *testing.T) {
		mockDeptRepo := new(mocks.DepartmentRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := routing.NewService(mockDeptRepo, mockUserRepo)

		mockDeptRepo.On("GetActiveByName", ctx, "Health").Return(nil, errors.New("db down")).Once()

		deptID, officerID := svc.Resolve(ctx, domain.CategoryHealth)

		assert.Nil(t, deptID)
		assert.Nil(t, officerID)
	})

	t.Run("missing department resolves to unrouted", func(t *testing.T) {
		mockDeptRepo := new(mocks.DepartmentRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := routing.NewService(mockDeptRepo, mockUserRepo)

		mockDeptRepo.On("GetActiveByName", ctx, "Education").Return(nil, nil).Once()

		deptID, officerID := svc.Resolve(ctx, domain.CategoryEducation)

		assert.Nil(t, deptID)
		assert.Nil(t, officerID)
	})
}
