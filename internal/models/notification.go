package models

import "time"

// Notification kinds, doubling as preference keys and push payload types.
const (
	NotificationReminder = "reminder"
	NotificationWinner   = "winner"
)

// NotificationLog tracks which daily broadcasts have gone out to avoid
// duplicates. One row per group per day; the timestamps double as
// presence flags.
type NotificationLog struct {
	GroupID        string     `gorm:"primaryKey;size:50" json:"group_id"`
	Date           string     `gorm:"primaryKey;size:10" json:"date"` // "YYYY-MM-DD"
	ReminderSentAt *time.Time `json:"reminder_sent_at"`
	WinnerSentAt   *time.Time `json:"winner_sent_at"`
}

// TableName specifies the table name for the NotificationLog model
func (NotificationLog) TableName() string {
	return "notification_log"
}
