package services

import (
	"testing"
	"time"

	"lunchbunch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB, groupID, userID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Member{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}).Error)
}

func TestResolveRecipientsFilters(t *testing.T) {
	db := setupTestDB(t)

	for _, id := range []string{"alice", "bob", "carol", "dave", "erin"} {
		seedMember(t, db, "g1", id)
	}

	seedUser(t, db, models.User{ID: "alice", PushToken: "tok-alice", Reminders: true, WinnerAlerts: true, SelectedGroup: "g1"})
	// No push token registered
	seedUser(t, db, models.User{ID: "bob", Reminders: true, WinnerAlerts: true, SelectedGroup: "g1"})
	// Opted out of reminders
	seedUser(t, db, models.User{ID: "carol", PushToken: "tok-carol", Reminders: false, WinnerAlerts: true, SelectedGroup: "g1"})
	// Member of g1 but currently following another group
	seedUser(t, db, models.User{ID: "dave", PushToken: "tok-dave", Reminders: true, WinnerAlerts: true, SelectedGroup: "g2"})
	// erin has a membership but never registered a user record

	recipients, err := ResolveRecipients(db, "g1", models.NotificationReminder)
	require.NoError(t, err)

	require.Len(t, recipients, 1)
	assert.Equal(t, "alice", recipients[0].UserID)
	assert.Equal(t, "tok-alice", recipients[0].PushToken)
}

func TestResolveRecipientsPerKindPreference(t *testing.T) {
	db := setupTestDB(t)

	seedMember(t, db, "g1", "carol")
	seedUser(t, db, models.User{ID: "carol", PushToken: "tok-carol", Reminders: false, WinnerAlerts: true, SelectedGroup: "g1"})

	reminder, err := ResolveRecipients(db, "g1", models.NotificationReminder)
	require.NoError(t, err)
	assert.Empty(t, reminder)

	winner, err := ResolveRecipients(db, "g1", models.NotificationWinner)
	require.NoError(t, err)
	assert.Len(t, winner, 1)
}

func TestResolveRecipientsEmptyGroup(t *testing.T) {
	db := setupTestDB(t)

	recipients, err := ResolveRecipients(db, "nobody-home", models.NotificationReminder)
	require.NoError(t, err)
	assert.Empty(t, recipients)
}
