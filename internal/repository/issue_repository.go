package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"e-county-api/internal/domain"
)

type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	Update(ctx context.Context, issue *domain.Issue) error
	AppendUpdate(ctx context.Context, update *domain.IssueUpdate) error
	SetFeedback(ctx context.Context, issueID uuid.UUID, fb domain.IssueFeedback) error
	List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error)
	ListForOfficer(ctx context.Context, officerID uuid.UUID, departmentID *uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) ([]domain.Issue, int64, error)
	ListAll(ctx context.Context) ([]domain.Issue, error)
	Count(ctx context.Context) (int64, error)
	CountByStatuses(ctx context.Context, statuses []domain.IssueStatus) (int64, error)
	CountForOfficer(ctx context.Context, officerID uuid.UUID, status *domain.IssueStatus) (int64, error)
	AvgResolutionDays(ctx context.Context) (float64, error)
}

type issueRepository struct {
	db *sqlx.DB
}

func NewIssueRepository(db *sqlx.DB) IssueRepository {
	return &issueRepository{db: db}
}

// issueColumns is shared by every query that hydrates an issue with its
// reporter, assignee and department projections.
const issueColumns = `
	i.issue_id, i.title, i.description, i.category, i.status, i.priority,
	i.reported_by, i.assigned_to, i.department_id,
	i.longitude, i.latitude, i.address,
	i.created_at, i.updated_at, i.resolved_at,
	i.feedback_rating, i.feedback_comment, i.feedback_submitted_at,
	r.first_name AS reporter_first_name, r.last_name AS reporter_last_name, r.email AS reporter_email,
	a.user_id AS assignee_id, a.first_name AS assignee_first_name, a.last_name AS assignee_last_name, a.email AS assignee_email,
	d.name AS department_name`

const issueJoins = `
	FROM issues i
	INNER JOIN users r ON i.reported_by = r.user_id
	LEFT JOIN users a ON i.assigned_to = a.user_id
	LEFT JOIN departments d ON i.department_id = d.department_id`

func scanIssue(rows *sqlx.Rows) (*domain.Issue, error) {
	var (
		i                 domain.Issue
		assignedTo        uuid.NullUUID
		departmentID      uuid.NullUUID
		resolvedAt        sql.NullTime
		fbRating          sql.NullInt64
		fbComment         sql.NullString
		fbSubmittedAt     sql.NullTime
		reporterFirstName string
		reporterLastName  string
		reporterEmail     string
		assigneeID        uuid.NullUUID
		assigneeFirst     sql.NullString
		assigneeLast      sql.NullString
		assigneeEmail     sql.NullString
		departmentName    sql.NullString
	)

	err := rows.Scan(
		&i.ID, &i.Title, &i.Description, &i.Category, &i.Status, &i.Priority,
		&i.ReportedBy, &assignedTo, &departmentID,
		&i.Longitude, &i.Latitude, &i.Address,
		&i.CreatedAt, &i.UpdatedAt, &resolvedAt,
		&fbRating, &fbComment, &fbSubmittedAt,
		&reporterFirstName, &reporterLastName, &reporterEmail,
		&assigneeID, &assigneeFirst, &assigneeLast, &assigneeEmail,
		&departmentName,
	)
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		id := assignedTo.UUID
		i.AssignedTo = &id
	}
	if departmentID.Valid {
		id := departmentID.UUID
		i.DepartmentID = &id
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		i.ResolvedAt = &t
	}
	i.Reporter = &domain.UserRef{
		ID:        i.ReportedBy,
		FirstName: reporterFirstName,
		LastName:  reporterLastName,
		Email:     reporterEmail,
	}
	if assigneeID.Valid {
		i.Assignee = &domain.UserRef{
			ID:        assigneeID.UUID,
			FirstName: assigneeFirst.String,
			LastName:  assigneeLast.String,
			Email:     assigneeEmail.String,
		}
	}
	if i.DepartmentID != nil && departmentName.Valid {
		i.Department = &domain.DepartmentRef{ID: *i.DepartmentID, Name: departmentName.String}
	}
	if fbRating.Valid {
		fb := domain.IssueFeedback{
			Rating:  int(fbRating.Int64),
			Comment: fbComment.String,
		}
		if fbSubmittedAt.Valid {
			t := fbSubmittedAt.Time
			fb.SubmittedAt = &t
		}
		i.Feedback = &fb
	}
	return &i, nil
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO issues (issue_id, title, description, category, status, priority,
			reported_by, assigned_to, department_id, longitude, latitude, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		issue.ID, issue.Title, issue.Description, issue.Category, issue.Status, issue.Priority,
		issue.ReportedBy, issue.AssignedTo, issue.DepartmentID,
		issue.Longitude, issue.Latitude, issue.Address,
	).Scan(&issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		return err
	}

	for idx := range issue.Photos {
		photo := &issue.Photos[idx]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO issue_photos (issue_id, url) VALUES ($1, $2)`,
			issue.ID, photo.URL,
		)
		if err != nil {
			return err
		}
		photo.UploadedAt = issue.CreatedAt
	}

	return tx.Commit()
}

func (r *issueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT `+issueColumns+issueJoins+` WHERE i.issue_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	issue, err := scanIssue(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadPhotos(ctx, issue); err != nil {
		return nil, err
	}
	if err := r.loadUpdates(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (r *issueRepository) loadPhotos(ctx context.Context, issue *domain.Issue) error {
	query := `SELECT url, uploaded_at FROM issue_photos WHERE issue_id = $1 ORDER BY uploaded_at ASC`
	return r.db.SelectContext(ctx, &issue.Photos, query, issue.ID)
}

func (r *issueRepository) loadUpdates(ctx context.Context, issue *domain.Issue) error {
	query := `
		SELECT
			u.update_id, u.issue_id, u.status, u.comment, u.updated_by, u.photos, u.created_at,
			au.first_name, au.last_name, au.email
		FROM issue_updates u
		INNER JOIN users au ON u.updated_by = au.user_id
		WHERE u.issue_id = $1
		ORDER BY u.created_at ASC`

	rows, err := r.db.QueryxContext(ctx, query, issue.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var updates []domain.IssueUpdate
	for rows.Next() {
		var (
			u      domain.IssueUpdate
			status sql.NullString
			photos pq.StringArray
			author domain.UserRef
		)
		err := rows.Scan(
			&u.ID, &u.IssueID, &status, &u.Comment, &u.UpdatedBy, &photos, &u.Timestamp,
			&author.FirstName, &author.LastName, &author.Email,
		)
		if err != nil {
			return err
		}
		if status.Valid {
			s := domain.IssueStatus(status.String)
			u.Status = &s
		}
		u.Photos = photos
		author.ID = u.UpdatedBy
		u.Author = &author
		updates = append(updates, u)
	}
	issue.Updates = updates
	return rows.Err()
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	query := `
		UPDATE issues
		SET status = $2, priority = $3, assigned_to = $4, department_id = $5,
			resolved_at = $6, updated_at = NOW()
		WHERE issue_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		issue.ID, issue.Status, issue.Priority, issue.AssignedTo, issue.DepartmentID, issue.ResolvedAt,
	).Scan(&issue.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrIssueNotFound
	}
	return err
}

func (r *issueRepository) AppendUpdate(ctx context.Context, update *domain.IssueUpdate) error {
	query := `
		INSERT INTO issue_updates (update_id, issue_id, status, comment, updated_by, photos)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		update.ID, update.IssueID, update.Status, update.Comment, update.UpdatedBy,
		pq.StringArray(update.Photos),
	).Scan(&update.Timestamp)
}

func (r *issueRepository) SetFeedback(ctx context.Context, issueID uuid.UUID, fb domain.IssueFeedback) error {
	query := `
		UPDATE issues
		SET feedback_rating = $2, feedback_comment = $3, feedback_submitted_at = $4, updated_at = NOW()
		WHERE issue_id = $1`

	submittedAt := fb.SubmittedAt
	if submittedAt == nil {
		now := time.Now()
		submittedAt = &now
	}
	res, err := r.db.ExecContext(ctx, query, issueID, fb.Rating, fb.Comment, submittedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *issueRepository) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	params.Validate()

	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += ` AND i.status = $` + itoa(len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += ` AND i.category = $` + itoa(len(args))
	}
	if filter.ReportedBy != nil {
		args = append(args, *filter.ReportedBy)
		where += ` AND i.reported_by = $` + itoa(len(args))
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM issues i`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := `SELECT ` + issueColumns + issueJoins + where +
		` ORDER BY i.created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	return r.queryIssues(ctx, query, args, total)
}

// ListForOfficer returns issues directly assigned to the officer or
// routed to the officer's department.
func (r *issueRepository) ListForOfficer(ctx context.Context, officerID uuid.UUID, departmentID *uuid.UUID, status *domain.IssueStatus, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	params.Validate()

	where := ` WHERE (i.assigned_to = $1`
	args := []interface{}{officerID}
	if departmentID != nil {
		args = append(args, *departmentID)
		where += ` OR i.department_id = $` + itoa(len(args))
	}
	where += `)`
	if status != nil {
		args = append(args, *status)
		where += ` AND i.status = $` + itoa(len(args))
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM issues i`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := `SELECT ` + issueColumns + issueJoins + where +
		` ORDER BY i.created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	return r.queryIssues(ctx, query, args, total)
}

func (r *issueRepository) queryIssues(ctx context.Context, query string, args []interface{}, total int64) ([]domain.Issue, int64, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, 0, err
		}
		issues = append(issues, *issue)
	}
	return issues, total, rows.Err()
}

// ListAll returns every issue with its references, used by the report
// exporter. No pagination: exports are whole-table dumps.
func (r *issueRepository) ListAll(ctx context.Context) ([]domain.Issue, error) {
	query := `SELECT ` + issueColumns + issueJoins + ` ORDER BY i.created_at DESC`
	issues, _, err := r.queryIssues(ctx, query, nil, 0)
	return issues, err
}

func (r *issueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM issues`)
	return count, err
}

func (r *issueRepository) CountByStatuses(ctx context.Context, statuses []domain.IssueStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM issues WHERE status = ANY($1)`, pq.StringArray(values))
	return count, err
}

func (r *issueRepository) CountForOfficer(ctx context.Context, officerID uuid.UUID, status *domain.IssueStatus) (int64, error) {
	var count int64
	if status == nil {
		err := r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM issues WHERE assigned_to = $1`, officerID)
		return count, err
	}
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM issues WHERE assigned_to = $1 AND status = $2`, officerID, *status)
	return count, err
}

func (r *issueRepository) AvgResolutionDays(ctx context.Context) (float64, error) {
	var avg float64
	query := `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 86400), 0)
		FROM issues
		WHERE status = 'resolved' AND resolved_at IS NOT NULL`
	err := r.db.GetContext(ctx, &avg, query)
	return avg, err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
