package notificationinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tobyt50/PPALink-sub000/hiring/notification"
)

// PostgresStore implements notification.Store using PostgreSQL
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgreSQL notification store
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

type notificationModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Message   string    `db:"message"`
	Link      string    `db:"link"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func fromEntity(n notification.Notification) *notificationModel {
	return &notificationModel{
		ID:        string(n.ID),
		UserID:    string(n.UserID),
		Message:   n.Message,
		Link:      n.Link,
		Type:      string(n.Type),
		CreatedAt: n.CreatedAt,
	}
}

// Append persists a notification row. Re-inserting the same id is treated as
// success so retried deliveries stay idempotent.
func (s *PostgresStore) Append(ctx context.Context, n notification.Notification) error {
	model := fromEntity(n)

	query := `
		INSERT INTO notifications (
			id, user_id, message, link, type, created_at
		) VALUES (
			:id, :user_id, :message, :link, :type, :created_at
		)
	`

	_, err := s.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return nil
			}
		}
		return fmt.Errorf("failed to append notification: %w", err)
	}

	return nil
}
