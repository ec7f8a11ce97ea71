package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"lunchbunch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotifyWorker drives the two daily broadcasts: the pre-close voting
// reminder and the winner announcement at close time. It wakes once a
// minute and matches each group's schedule against the current minute in
// a fixed civil time zone, so each trigger fires at most once per day.
type NotifyWorker struct {
	db       *gorm.DB
	push     *PushService
	loc      *time.Location
	interval time.Duration
}

func NewNotifyWorker(db *gorm.DB, push *PushService, loc *time.Location) *NotifyWorker {
	return &NotifyWorker{
		db:       db,
		push:     push,
		loc:      loc,
		interval: time.Minute,
	}
}

func (w *NotifyWorker) Start() {
	go w.run()
}

func (w *NotifyWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for t := range ticker.C {
		w.Tick(t)
	}
}

// Tick processes one scheduler wake-up. Groups are handled concurrently;
// each group's reminder/winner handling is sequential.
func (w *NotifyWorker) Tick(now time.Time) {
	var groups []models.Group
	if err := w.db.Find(&groups).Error; err != nil {
		log.Printf("Error: failed to list groups for notification tick: %v", err)
		return
	}

	local := now.In(w.loc)

	var wg sync.WaitGroup
	for _, group := range groups {
		wg.Add(1)
		go func(group models.Group) {
			defer wg.Done()
			w.processGroup(group, local)
		}(group)
	}
	wg.Wait()
}

func (w *NotifyWorker) processGroup(group models.Group, now time.Time) {
	minute := now.Format("15:04")
	date := now.Format(models.VoteDateLayout)
	closeAt := group.CloseTime()

	if minute == ReminderTime(closeAt) {
		w.sendReminder(group, date, closeAt)
	}
	if minute == closeAt {
		w.announceWinner(group, date)
	}
}

// claim atomically marks the day's broadcast as sent and reports whether
// this call won the claim. The conditional upsert means overlapping ticks
// (or a retried invocation) cannot both claim the same group-day.
func (w *NotifyWorker) claim(groupID, date, column string) bool {
	now := time.Now()
	entry := models.NotificationLog{GroupID: groupID, Date: date}
	switch column {
	case "reminder_sent_at":
		entry.ReminderSentAt = &now
	case "winner_sent_at":
		entry.WinnerSentAt = &now
	}

	result := w.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "date"}},
		Where:     clause.Where{Exprs: []clause.Expression{gorm.Expr(column + " IS NULL")}},
		DoUpdates: clause.Assignments(map[string]interface{}{column: now}),
	}).Create(&entry)
	if result.Error != nil {
		log.Printf("Error: failed to claim %s for group %s on %s: %v", column, groupID, date, result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func (w *NotifyWorker) sendReminder(group models.Group, date, closeAt string) {
	if !w.claim(group.ID, date, "reminder_sent_at") {
		return
	}

	recipients, err := ResolveRecipients(w.db, group.ID, models.NotificationReminder)
	if err != nil {
		log.Printf("Error: failed to resolve reminder recipients for group %s: %v", group.ID, err)
		return
	}
	if len(recipients) == 0 {
		log.Printf("No reminder recipients for group %s", group.ID)
		return
	}

	tokens := make([]string, 0, len(recipients))
	for _, r := range recipients {
		tokens = append(tokens, r.PushToken)
	}

	w.push.Broadcast(context.Background(), tokens,
		"Time to vote!",
		fmt.Sprintf("Voting closes at %s - vote now", closeAt),
		map[string]string{
			"type":    models.NotificationReminder,
			"groupId": group.ID,
		})
	log.Printf("Sent voting reminder to %d members of group %s", len(recipients), group.ID)
}

func (w *NotifyWorker) announceWinner(group models.Group, date string) {
	if !w.claim(group.ID, date, "winner_sent_at") {
		return
	}

	var ballots []models.Ballot
	if err := w.db.Where("group_id = ? AND vote_date = ?", group.ID, date).Find(&ballots).Error; err != nil {
		log.Printf("Error: failed to load ballots for group %s on %s: %v", group.ID, date, err)
		return
	}
	if len(ballots) == 0 {
		log.Printf("No ballots for group %s on %s, skipping winner announcement", group.ID, date)
		return
	}

	winner, winnerVotes, totalVotes := TallyWinner(ballots)
	if winner == "" {
		return
	}

	recipients, err := ResolveRecipients(w.db, group.ID, models.NotificationWinner)
	if err != nil {
		log.Printf("Error: failed to resolve winner recipients for group %s: %v", group.ID, err)
		return
	}
	if len(recipients) == 0 {
		log.Printf("No winner recipients for group %s", group.ID)
		return
	}

	tokens := make([]string, 0, len(recipients))
	for _, r := range recipients {
		tokens = append(tokens, r.PushToken)
	}

	w.push.Broadcast(context.Background(), tokens,
		"Today's lunch winner",
		fmt.Sprintf("%s won with %d of %d votes", winner, winnerVotes, totalVotes),
		map[string]string{
			"type":    models.NotificationWinner,
			"groupId": group.ID,
			"winner":  winner,
		})
	log.Printf("Announced %s to %d members of group %s", winner, len(recipients), group.ID)
}
