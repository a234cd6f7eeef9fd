package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"threatguard/internal/models"
)

// NotificationFilter narrows ListNotifications. Nil/empty fields are skipped.
type NotificationFilter struct {
	NotificationType string
	Priority         string
	IsRead           *bool
	Page             int
	Limit            int
}

type NotificationRepository interface {
	SaveNotification(n *models.Notification) error
	ListNotifications(userID string, f NotificationFilter) ([]*models.Notification, int, error)
	CountUnread(userID string) (int, error)
	UpdateRead(id, userID string, isRead bool) (bool, error)
}

type notificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{db: db, logger: logger}
}

func (r *notificationRepository) SaveNotification(n *models.Notification) error {
	query := `INSERT INTO notifications
	          (id, user_id, notification_type, title, message, priority, is_read, action_url, metadata, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(query, n.ID, n.UserID, n.NotificationType, n.Title, n.Message,
		n.Priority, n.IsRead, n.ActionURL, n.Metadata, n.CreatedAt)
	return err
}

// ListNotifications returns the requested page plus the total row count for
// the same filter.
func (r *notificationRepository) ListNotifications(userID string, f NotificationFilter) ([]*models.Notification, int, error) {
	where := ` WHERE user_id = $1`
	args := []interface{}{userID}

	if f.NotificationType != "" {
		args = append(args, f.NotificationType)
		where += fmt.Sprintf(" AND notification_type = $%d", len(args))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if f.IsRead != nil {
		args = append(args, *f.IsRead)
		where += fmt.Sprintf(" AND is_read = $%d", len(args))
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM notifications`+where, args...); err != nil {
		return nil, 0, err
	}

	listArgs := append(args, f.Limit, (f.Page-1)*f.Limit)
	query := `SELECT * FROM notifications` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(listArgs)-1, len(listArgs))

	notifications := []*models.Notification{}
	if err := r.db.Select(&notifications, query, listArgs...); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(userID string) (int, error) {
	var unread int
	err := r.db.Get(&unread, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	return unread, err
}

// UpdateRead returns false when the notification does not exist or does not
// belong to the user.
func (r *notificationRepository) UpdateRead(id, userID string, isRead bool) (bool, error) {
	res, err := r.db.Exec(`UPDATE notifications SET is_read = $3 WHERE id = $1 AND user_id = $2`, id, userID, isRead)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
