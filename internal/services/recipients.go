package services

import (
	"errors"
	"log"
	"sync"

	"lunchbunch/internal/models"

	"gorm.io/gorm"
)

// Recipient is one deliverable push target for a group broadcast.
type Recipient struct {
	UserID    string
	PushToken string
}

// ResolveRecipients returns the group's members who should receive the
// named broadcast kind: the user record exists, has a push token, has the
// preference enabled, and currently has this group selected. A member of
// several groups only gets notifications for the selected one.
//
// User lookups run concurrently; result order is unspecified.
func ResolveRecipients(db *gorm.DB, groupID, kind string) ([]Recipient, error) {
	var members []models.Member
	if err := db.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, err
	}

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		recipients []Recipient
	)
	for _, m := range members {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()

			var user models.User
			if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("Warning: failed to load user %s: %v", userID, err)
				}
				return
			}
			if user.PushToken == "" || !user.WantsNotification(kind) || user.SelectedGroup != groupID {
				return
			}

			mu.Lock()
			recipients = append(recipients, Recipient{UserID: user.ID, PushToken: user.PushToken})
			mu.Unlock()
		}(m.UserID)
	}
	wg.Wait()

	return recipients, nil
}
