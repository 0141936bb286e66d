package mocks

import (
	"context"

	"e-county-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RoutingService struct {
	mock.Mock
}

func (m *RoutingService) Resolve(ctx context.Context, category domain.IssueCategory) (*uuid.UUID, *uuid.UUID) {
	args := m.Called(ctx, category)
	var deptID, officerID *uuid.UUID
	if args.Get(0) != nil {
		deptID = args.Get(0).(*uuid.UUID)
	}
	if args.Get(1) != nil {
		officerID = args.Get(1).(*uuid.UUID)
	}
	return deptID, officerID
}
