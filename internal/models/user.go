package models

import "time"

// User holds the notification-facing side of an account: where pushes go
// and which broadcasts the user wants. Rows are written by the client app
// (device registration, preference toggles) and by the approval endpoint
// (selected group).
type User struct {
	ID            string    `gorm:"primaryKey;size:50" json:"id"`
	Email         string    `gorm:"size:255" json:"email"`
	DisplayName   string    `gorm:"size:100" json:"display_name"`
	PushToken     string    `gorm:"size:512" json:"-"`
	Reminders     bool      `gorm:"not null;default:true" json:"reminders"`
	WinnerAlerts  bool      `gorm:"not null;default:true" json:"winner_alerts"`
	SelectedGroup string    `gorm:"size:50;index" json:"selected_group"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WantsNotification reports whether the named broadcast kind is enabled
// for this user.
func (u *User) WantsNotification(kind string) bool {
	switch kind {
	case NotificationReminder:
		return u.Reminders
	case NotificationWinner:
		return u.WinnerAlerts
	}
	return false
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "app_user"
}

// UpdateDeviceRequest registers the push token for a user's current device.
type UpdateDeviceRequest struct {
	PushToken string `json:"push_token" binding:"required"`
}

// UpdatePreferencesRequest updates a user's notification preferences.
type UpdatePreferencesRequest struct {
	Reminders     *bool   `json:"reminders"`
	WinnerAlerts  *bool   `json:"winner_alerts"`
	SelectedGroup *string `json:"selected_group"`
}
