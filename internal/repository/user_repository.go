package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"e-county-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	ListOfficers(ctx context.Context, departmentID *uuid.UUID) ([]domain.User, error)
	FirstActiveOfficer(ctx context.Context, departmentID uuid.UUID) (*domain.User, error)
	SetAnnouncementPermission(ctx context.Context, id uuid.UUID, allowed bool) error
	CountByRole(ctx context.Context, role *domain.UserRole) (int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, first_name, last_name, email, phone, password_hash, role, department_id, is_active, is_verified, can_create_announcement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone,
		user.PasswordHash, user.Role, user.DepartmentID,
		user.IsActive, user.IsVerified, user.CanCreateAnnouncement,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, email = :email,
			phone = :phone, password_hash = :password_hash, role = :role,
			department_id = :department_id, is_active = :is_active,
			is_verified = :is_verified, can_create_announcement = :can_create_announcement,
			updated_at = NOW()
		WHERE user_id = :user_id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	where := ` WHERE 1=1`
	args := map[string]interface{}{
		"limit":  params.Limit,
		"offset": params.Offset(),
	}
	if filter.Role != nil {
		where += ` AND u.role = :role`
		args["role"] = *filter.Role
	}
	if filter.DepartmentID != nil {
		where += ` AND u.department_id = :department_id`
		args["department_id"] = *filter.DepartmentID
	}
	if filter.ActiveOnly {
		where += ` AND u.is_active = TRUE`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u` + where
	rows, err := r.db.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := `SELECT u.* FROM users u` + where + `
		ORDER BY u.created_at DESC
		LIMIT :limit OFFSET :offset`

	rows, err = r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.StructScan(&u); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) ListOfficers(ctx context.Context, departmentID *uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	if departmentID != nil {
		query := `SELECT * FROM users WHERE role = 'officer' AND is_active = TRUE AND department_id = $1 ORDER BY first_name ASC`
		err := r.db.SelectContext(ctx, &users, query, *departmentID)
		return users, err
	}
	query := `SELECT * FROM users WHERE role = 'officer' AND is_active = TRUE ORDER BY first_name ASC`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

// FirstActiveOfficer returns any one active officer in the department.
// There is no workload ranking: first match wins.
func (r *userRepository) FirstActiveOfficer(ctx context.Context, departmentID uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT * FROM users
		WHERE role = 'officer' AND is_active = TRUE AND department_id = $1
		ORDER BY created_at ASC
		LIMIT 1`

	err := r.db.GetContext(ctx, &user, query, departmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetAnnouncementPermission(ctx context.Context, id uuid.UUID, allowed bool) error {
	query := `UPDATE users SET can_create_announcement = $2, updated_at = NOW() WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, allowed)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context, role *domain.UserRole) (int64, error) {
	var count int64
	if role == nil {
		err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
		return count, err
	}
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, *role)
	return count, err
}
