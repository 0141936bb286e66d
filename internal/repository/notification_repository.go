package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"e-county-api/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipient uuid.UUID, isRead *bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipient uuid.UUID) error
	MarkEmailSent(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context, recipient uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient, type, issue_id, title, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.Recipient, notif.Type, notif.IssueID, notif.Title, notif.Message,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipient uuid.UUID, isRead *bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := ` WHERE recipient = $1`
	args := []interface{}{recipient}
	if isRead != nil {
		args = append(args, *isRead)
		where += ` AND is_read = $2`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := `SELECT * FROM notifications` + where +
		` ORDER BY created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipient uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE recipient = $1 AND is_read = FALSE`
	_, err := r.db.ExecContext(ctx, query, recipient)
	return err
}

func (r *notificationRepository) MarkEmailSent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET email_sent = TRUE WHERE notification_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipient uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient = $1 AND is_read = FALSE`
	err := r.db.GetContext(ctx, &count, query, recipient)
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE notification_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
