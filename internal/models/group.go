package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultVoteCloseTime is used when a group has no close time configured.
const DefaultVoteCloseTime = "11:50"

// Group represents a lunch group. Groups are provisioned by their owners
// through the client app; this service only reads them.
type Group struct {
	ID            string                      `gorm:"primaryKey;size:50" json:"id"`
	Name          string                      `gorm:"size:100;not null" json:"name"`
	Managers      datatypes.JSONSlice[string] `json:"managers"`
	VoteCloseTime string                      `gorm:"size:5" json:"vote_close_time"` // "HH:MM", 24-hour
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// CloseTime returns the group's configured vote close time, falling back
// to the default when unset.
func (g *Group) CloseTime() string {
	if g.VoteCloseTime == "" {
		return DefaultVoteCloseTime
	}
	return g.VoteCloseTime
}

// Member is an approved group membership. Rows are created only by the
// approval endpoint.
type Member struct {
	GroupID     string    `gorm:"primaryKey;size:50" json:"group_id"`
	UserID      string    `gorm:"primaryKey;size:50" json:"user_id"`
	Email       string    `gorm:"size:255" json:"email"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	JoinedAt    time.Time `gorm:"not null" json:"joined_at"`
}

// PendingMember is an open join request, consumed exactly once by the
// approval endpoint (approve moves it to Member, deny just deletes it).
type PendingMember struct {
	GroupID     string    `gorm:"primaryKey;size:50" json:"group_id"`
	UserID      string    `gorm:"primaryKey;size:50" json:"user_id"`
	Email       string    `gorm:"size:255" json:"email"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	RequestedAt time.Time `gorm:"not null" json:"requested_at"`
}

// DisplayLabel returns the best human-readable name for the applicant.
func (p *PendingMember) DisplayLabel() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Email != "" {
		return p.Email
	}
	return "Unknown"
}

// TableName specifies the table name for the Group model
func (Group) TableName() string {
	return "group"
}

// TableName specifies the table name for the Member model
func (Member) TableName() string {
	return "member"
}

// TableName specifies the table name for the PendingMember model
func (PendingMember) TableName() string {
	return "pending_member"
}

// JoinRequest represents the data needed to request membership in a group
type JoinRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
}
