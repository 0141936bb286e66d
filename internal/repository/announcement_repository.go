package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"e-county-api/internal/domain"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, ann *domain.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	// IncrementViewAndGet bumps the view counter and returns the fresh row.
	IncrementViewAndGet(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	Update(ctx context.Context, ann *domain.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context, visibleTo []domain.Visibility, params domain.PaginationParams) ([]domain.Announcement, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams) ([]domain.Announcement, int64, error)
}

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

const announcementColumns = `
	an.announcement_id, an.title, an.description, an.content, an.image,
	an.author_id, an.author_role, an.department_id, an.status, an.visible_to,
	an.view_count, an.published_at, an.created_at, an.updated_at,
	u.first_name, u.last_name, u.email`

const announcementJoins = `
	FROM announcements an
	INNER JOIN users u ON an.author_id = u.user_id`

func scanAnnouncement(rows *sqlx.Rows) (*domain.Announcement, error) {
	var (
		a            domain.Announcement
		image        sql.NullString
		departmentID uuid.NullUUID
		publishedAt  sql.NullTime
		author       domain.UserRef
	)

	err := rows.Scan(
		&a.ID, &a.Title, &a.Description, &a.Content, &image,
		&a.AuthorID, &a.AuthorRole, &departmentID, &a.Status, &a.VisibleTo,
		&a.ViewCount, &publishedAt, &a.CreatedAt, &a.UpdatedAt,
		&author.FirstName, &author.LastName, &author.Email,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid {
		s := image.String
		a.Image = &s
	}
	if departmentID.Valid {
		id := departmentID.UUID
		a.DepartmentID = &id
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}
	author.ID = a.AuthorID
	a.Author = &author
	return &a, nil
}

func (r *announcementRepository) Create(ctx context.Context, ann *domain.Announcement) error {
	query := `
		INSERT INTO announcements (announcement_id, title, description, content, image,
			author_id, author_role, department_id, status, visible_to, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		ann.ID, ann.Title, ann.Description, ann.Content, ann.Image,
		ann.AuthorID, ann.AuthorRole, ann.DepartmentID, ann.Status, ann.VisibleTo, ann.PublishedAt,
	).Scan(&ann.CreatedAt, &ann.UpdatedAt)
}

func (r *announcementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	return r.getOne(ctx, `SELECT `+announcementColumns+announcementJoins+` WHERE an.announcement_id = $1`, id)
}

func (r *announcementRepository) IncrementViewAndGet(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE announcements SET view_count = view_count + 1 WHERE announcement_id = $1`, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *announcementRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Announcement, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
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
	return scanAnnouncement(rows)
}

func (r *announcementRepository) Update(ctx context.Context, ann *domain.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $2, description = $3, content = $4, image = $5,
			status = $6, visible_to = $7, published_at = $8, updated_at = NOW()
		WHERE announcement_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		ann.ID, ann.Title, ann.Description, ann.Content, ann.Image,
		ann.Status, ann.VisibleTo, ann.PublishedAt,
	).Scan(&ann.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAnnouncementNotFound
	}
	return err
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE announcement_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *announcementRepository) ListPublished(ctx context.Context, visibleTo []domain.Visibility, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	params.Validate()

	where := ` WHERE an.status = 'published'`
	args := []interface{}{}
	if len(visibleTo) > 0 {
		placeholders := ``
		for i, v := range visibleTo {
			if i > 0 {
				placeholders += `, `
			}
			args = append(args, v)
			placeholders += `$` + itoa(len(args))
		}
		where += ` AND an.visible_to IN (` + placeholders + `)`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM announcements an`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := `SELECT ` + announcementColumns + announcementJoins + where +
		` ORDER BY an.published_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	return r.queryMany(ctx, query, args, total)
}

func (r *announcementRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM announcements WHERE author_id = $1`, authorID); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + announcementColumns + announcementJoins + `
		WHERE an.author_id = $1
		ORDER BY an.created_at DESC LIMIT $2 OFFSET $3`

	return r.queryMany(ctx, query, []interface{}{authorID, params.Limit, params.Offset()}, total)
}

func (r *announcementRepository) queryMany(ctx context.Context, query string, args []interface{}, total int64) ([]domain.Announcement, int64, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var announcements []domain.Announcement
	for rows.Next() {
		ann, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, err
		}
		announcements = append(announcements, *ann)
	}
	return announcements, total, rows.Err()
}
