package dashboard

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"e-county-api/internal/domain"
	"e-county-api/internal/repository"
)

// Stats is the admin overview: population of each role, issue volume
// by state, and two derived quality measures.
type Stats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalCitizens     int64   `json:"total_citizens"`
	TotalOfficers     int64   `json:"total_officers"`
	TotalIssues       int64   `json:"total_issues"`
	PendingIssues     int64   `json:"pending_issues"`
	ActiveIssues      int64   `json:"active_issues"`
	ResolvedIssues    int64   `json:"resolved_issues"`
	AvgResolutionDays float64 `json:"avg_resolution_days"`
	CompletionRatePct float64 `json:"completion_rate_pct"`
	TotalDepartments  int64   `json:"total_departments"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
	InvalidateCache(ctx context.Context)
}

type service struct {
	userRepo  repository.UserRepository
	issueRepo repository.IssueRepository
	deptRepo  repository.DepartmentRepository
	redis     *redis.Client
}

func NewService(userRepo repository.UserRepository, issueRepo repository.IssueRepository, deptRepo repository.DepartmentRepository, redis *redis.Client) Service {
	return &service{
		userRepo:  userRepo,
		issueRepo: issueRepo,
		deptRepo:  deptRepo,
		redis:     redis,
	}
}

const statsCacheKey = "dashboard:stats"

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalUsers, err := s.userRepo.CountByRole(ctx, nil)
	if err != nil {
		return nil, err
	}
	citizenRole := domain.RoleCitizen
	totalCitizens, err := s.userRepo.CountByRole(ctx, &citizenRole)
	if err != nil {
		return nil, err
	}
	officerRole := domain.RoleOfficer
	totalOfficers, err := s.userRepo.CountByRole(ctx, &officerRole)
	if err != nil {
		return nil, err
	}

	totalIssues, err := s.issueRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingIssues, err := s.issueRepo.CountByStatuses(ctx, []domain.IssueStatus{domain.StatusPending, domain.StatusVerified})
	if err != nil {
		return nil, err
	}
	activeIssues, err := s.issueRepo.CountByStatuses(ctx, []domain.IssueStatus{domain.StatusAssigned, domain.StatusEnRoute, domain.StatusInProgress})
	if err != nil {
		return nil, err
	}
	resolvedIssues, err := s.issueRepo.CountByStatuses(ctx, []domain.IssueStatus{domain.StatusResolved})
	if err != nil {
		return nil, err
	}

	avgDays, err := s.issueRepo.AvgResolutionDays(ctx)
	if err != nil {
		return nil, err
	}

	totalDepts, err := s.deptRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var completionRate float64
	if totalIssues > 0 {
		completionRate = math.Round(float64(resolvedIssues)/float64(totalIssues)*10000) / 100
	}

	stats := &Stats{
		TotalUsers:        totalUsers,
		TotalCitizens:     totalCitizens,
		TotalOfficers:     totalOfficers,
		TotalIssues:       totalIssues,
		PendingIssues:     pendingIssues,
		ActiveIssues:      activeIssues,
		ResolvedIssues:    resolvedIssues,
		AvgResolutionDays: math.Round(avgDays*100) / 100,
		CompletionRatePct: completionRate,
		TotalDepartments:  totalDepts,
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}

// InvalidateCache drops the cached stats so the next read is fresh.
// Called after bulk admin changes; harmless if the key is absent.
func (s *service) InvalidateCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsCacheKey).Err()
	}
}
