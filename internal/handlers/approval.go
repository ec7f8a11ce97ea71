package handlers

import (
	"errors"
	"html"
	"log"
	"net/http"
	"time"

	"lunchbunch/internal/auth"
	"lunchbunch/internal/database"
	"lunchbunch/internal/models"
	"lunchbunch/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApproveMember handles the signed approve/deny links mailed to group
// managers: GET /approve?g=<group>&u=<user>&t=<token>&action=approve|deny.
// The response is always a rendered HTML page since the link is opened in
// a browser from an email client.
func ApproveMember(c *gin.Context) {
	groupID := c.Query("g")
	userID := c.Query("u")
	token := c.Query("t")
	action := c.DefaultQuery("action", auth.ActionApprove)

	if groupID == "" || userID == "" || token == "" {
		errorPage(c, http.StatusBadRequest, "Missing parameters")
		return
	}

	if !auth.VerifyAction(action, groupID, userID, token) {
		log.Printf("Warning: bad action token for group %s user %s from %s", groupID, userID, utils.GetRealClientIP(c))
		errorPage(c, http.StatusForbidden, "Invalid or expired link")
		return
	}

	db := database.GetDB()

	var group models.Group
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorPage(c, http.StatusNotFound, "Group not found")
		} else {
			log.Printf("Error: failed to load group %s: %v", groupID, err)
			errorPage(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}
	groupName := group.Name
	if groupName == "" {
		groupName = group.ID
	}

	var pending models.PendingMember
	if err := db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The link was already used (or the request withdrawn). Not an
			// error: managers often click both links or click twice.
			resultPage(c, "Already Processed", "This request has already been handled.", "🍔")
			return
		}
		log.Printf("Error: failed to load pending member: %v", err)
		errorPage(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	name := pending.DisplayLabel()

	if action == auth.ActionDeny {
		if err := db.Delete(&pending).Error; err != nil {
			log.Printf("Error: failed to delete pending member: %v", err)
			errorPage(c, http.StatusInternalServerError, "Something went wrong")
			return
		}
		resultPage(c, "Request Denied", name+" has been denied access to "+groupName+".", "❌")
		return
	}

	// Approve: move the pending request to members
	member := models.Member{
		GroupID:     groupID,
		UserID:      userID,
		Email:       pending.Email,
		DisplayName: pending.DisplayName,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(&member).Error; err != nil {
		log.Printf("Error: failed to create member: %v", err)
		errorPage(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if err := db.Delete(&pending).Error; err != nil {
		log.Printf("Error: failed to delete pending member: %v", err)
		errorPage(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	// Best effort: point the user's notifications at their new group. The
	// approval has already committed, so a failure here is only logged.
	if err := setSelectedGroup(db, userID, groupID); err != nil {
		log.Printf("Warning: could not set selected group for %s: %v", userID, err)
	}

	resultPage(c, "Member Approved!", name+" now has access to "+groupName+".", "✅")
}

// setSelectedGroup upserts the user row so approval works even before the
// user has registered a device.
func setSelectedGroup(db *gorm.DB, userID, groupID string) error {
	return db.Exec(
		`INSERT INTO app_user (id, selected_group, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET selected_group = ?, updated_at = ?`,
		userID, groupID, time.Now(), time.Now(), groupID, time.Now(),
	).Error
}

func errorPage(c *gin.Context, status int, msg string) {
	page := `<!DOCTYPE html><html><head><meta charset="utf-8"><title>Lunch Bunch</title></head>
<body style="margin:0;padding:40px;background:#1a1a1a;color:#f5e6d0;font-family:Arial,sans-serif;text-align:center;">
<h1 style="color:#e74c3c;">Error</h1><p>` + html.EscapeString(msg) + `</p>
<a href="` + appURL() + `" style="color:#bf5700;">Go to Lunch Bunch</a>
</body></html>`
	c.Data(status, "text/html; charset=utf-8", []byte(page))
}

func resultPage(c *gin.Context, title, message, emoji string) {
	page := `<!DOCTYPE html><html><head><meta charset="utf-8"><title>Lunch Bunch</title></head>
<body style="margin:0;padding:0;background:#1a1a1a;font-family:Arial,sans-serif;">
<div style="max-width:480px;margin:0 auto;padding:40px 24px;text-align:center;">
  <div style="font-size:64px;margin-bottom:16px;">` + emoji + `</div>
  <h1 style="color:#bf5700;font-size:24px;">` + html.EscapeString(title) + `</h1>
  <p style="color:#a0a0a0;font-size:16px;">` + html.EscapeString(message) + `</p>
  <a href="` + appURL() + `" style="display:inline-block;margin-top:24px;padding:12px 32px;background:#bf5700;color:#fff;text-decoration:none;border-radius:8px;font-weight:bold;">Open Lunch Bunch</a>
</div></body></html>`
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
