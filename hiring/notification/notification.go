package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// Type classifies a notification for the inbox UI.
type Type string

const (
	TypeGeneric Type = "GENERIC"
	TypeMessage Type = "MESSAGE"
)

// Notification is one durable, append-only inbox entry for a user. Delivery
// and read-state handling belong to the inbox surface, not to this core.
type Notification struct {
	ID        kernel.NotificationID `db:"id" json:"id"`
	UserID    kernel.UserID         `db:"user_id" json:"user_id"`
	Message   string                `db:"message" json:"message"`
	Link      string                `db:"link" json:"link"`
	Type      Type                  `db:"type" json:"type"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}

// NewGeneric builds a GENERIC notification for a user.
func NewGeneric(userID kernel.UserID, message, link string) Notification {
	return Notification{
		ID:        kernel.NewNotificationID(uuid.NewString()),
		UserID:    userID,
		Message:   message,
		Link:      link,
		Type:      TypeGeneric,
		CreatedAt: time.Now(),
	}
}
