package models

import "time"

// VoteDateLayout is the calendar-day key used for ballots and
// notification logs.
const VoteDateLayout = "2006-01-02"

// Ballot is one voter's restaurant choice for a group on a given day.
// Re-voting replaces the earlier choice, so each (group, date, user) has
// at most one row.
type Ballot struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	GroupID    string    `gorm:"size:50;not null;uniqueIndex:idx_ballot_group_date_user" json:"group_id"`
	VoteDate   string    `gorm:"size:10;not null;uniqueIndex:idx_ballot_group_date_user" json:"vote_date"`
	UserID     string    `gorm:"size:50;not null;uniqueIndex:idx_ballot_group_date_user" json:"user_id"`
	Restaurant string    `gorm:"size:200;not null" json:"restaurant"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Ballot model
func (Ballot) TableName() string {
	return "ballot"
}

// CastBallotRequest represents the data needed to cast a vote
type CastBallotRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Restaurant string `json:"restaurant" binding:"required"`
}
