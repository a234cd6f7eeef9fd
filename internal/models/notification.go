package models

import (
	"encoding/json"
	"time"
)

// NotificationTypeThreatAlert is the type assigned to escalation
// notifications produced by the threat pipeline.
const NotificationTypeThreatAlert = "threat_alert"

// Notification is a row of the 'notifications' table.
type Notification struct {
	ID               string          `db:"id" json:"id"`
	UserID           string          `db:"user_id" json:"user_id"`
	NotificationType string          `db:"notification_type" json:"notification_type"`
	Title            string          `db:"title" json:"title"`
	Message          string          `db:"message" json:"message"`
	Priority         string          `db:"priority" json:"priority"`
	IsRead           bool            `db:"is_read" json:"is_read"`
	ActionURL        *string         `db:"action_url" json:"action_url,omitempty"`
	Metadata         json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
