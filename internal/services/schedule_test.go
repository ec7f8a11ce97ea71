package services

import (
	"testing"

	"lunchbunch/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReminderTime(t *testing.T) {
	tests := []struct {
		closeTime string
		want      string
	}{
		{"11:50", "10:50"},
		{"12:30", "11:30"},
		{"01:00", "00:00"},
		{"00:20", "23:20"}, // wraps to the previous clock day
		{"00:00", "23:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReminderTime(tt.closeTime), "close time %s", tt.closeTime)
	}
}

func TestReminderTimeFallsBackOnGarbage(t *testing.T) {
	// Unparseable close times behave like the default 11:50
	assert.Equal(t, "10:50", ReminderTime(""))
	assert.Equal(t, "10:50", ReminderTime("noonish"))
	assert.Equal(t, "10:50", ReminderTime("25:99"))
}

func ballotsFor(counts map[string]int) []models.Ballot {
	var ballots []models.Ballot
	for name, n := range counts {
		for i := 0; i < n; i++ {
			ballots = append(ballots, models.Ballot{Restaurant: name})
		}
	}
	return ballots
}

func TestTallyWinnerPlurality(t *testing.T) {
	winner, votes, total := TallyWinner(ballotsFor(map[string]int{
		"Zebra Diner": 3,
		"Al's Tacos":  1,
	}))

	assert.Equal(t, "Zebra Diner", winner)
	assert.Equal(t, 3, votes)
	assert.Equal(t, 4, total)
}

func TestTallyWinnerTieBreaksAlphabetically(t *testing.T) {
	winner, votes, total := TallyWinner(ballotsFor(map[string]int{
		"B": 2,
		"A": 2,
		"C": 1,
	}))

	assert.Equal(t, "A", winner)
	assert.Equal(t, 2, votes)
	assert.Equal(t, 5, total)
}

func TestTallyWinnerEmpty(t *testing.T) {
	winner, votes, total := TallyWinner(nil)

	assert.Equal(t, "", winner)
	assert.Zero(t, votes)
	assert.Zero(t, total)
}
