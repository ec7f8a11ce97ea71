package services

import (
	"fmt"
	"sort"

	"lunchbunch/internal/models"
)

// reminderLeadMinutes is how long before voting closes the reminder goes out.
const reminderLeadMinutes = 60

// ReminderTime returns the "HH:MM" minute at which the pre-close reminder
// fires for the given close time. The subtraction wraps around midnight,
// so a close time of "00:20" reminds at "23:20" the same civil day.
func ReminderTime(closeTime string) string {
	var h, m int
	if _, err := fmt.Sscanf(closeTime, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return ReminderTime(models.DefaultVoteCloseTime)
	}
	total := (h*60 + m - reminderLeadMinutes + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// TallyWinner counts ballots by restaurant and picks the plurality winner.
// Ties are broken by ascending restaurant name so the result is
// deterministic regardless of ballot order. Returns zero values when there
// are no ballots.
func TallyWinner(ballots []models.Ballot) (winner string, winnerVotes int, totalVotes int) {
	if len(ballots) == 0 {
		return "", 0, 0
	}

	counts := make(map[string]int, len(ballots))
	for _, b := range ballots {
		counts[b.Restaurant]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if counts[name] > winnerVotes {
			winner = name
			winnerVotes = counts[name]
		}
	}
	return winner, winnerVotes, len(ballots)
}
