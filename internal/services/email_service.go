package services

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"lunchbunch/internal/auth"
	"lunchbunch/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client     *sendgrid.Client
	fromEmail  string
	fromName   string
	approveURL string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	approveURL := os.Getenv("APPROVE_BASE_URL")
	if fromName == "" {
		fromName = "Lunch Bunch"
	}
	if approveURL == "" {
		approveURL = "http://localhost:8080/approve"
	}

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		approveURL: approveURL,
	}
}

// ActionLink builds a signed approve or deny URL for a pending join request.
func (s *EmailService) ActionLink(action, groupID, userID string) string {
	token := auth.SignAction(action, groupID, userID)
	return fmt.Sprintf("%s?g=%s&u=%s&t=%s&action=%s",
		s.approveURL, url.QueryEscape(groupID), url.QueryEscape(userID), token, action)
}

// NotifyManagers emails every manager of the group about a new join
// request, with signed approve/deny links. One email per manager. Delivery
// failures are logged and swallowed; there is no retry.
func (s *EmailService) NotifyManagers(group models.Group, pending models.PendingMember) {
	if len(group.Managers) == 0 {
		log.Printf("No managers to notify for group %s", group.ID)
		return
	}

	approveURL := s.ActionLink(auth.ActionApprove, group.ID, pending.UserID)
	denyURL := s.ActionLink(auth.ActionDeny, group.ID, pending.UserID)

	subject := fmt.Sprintf("Lunch Bunch: New member request for %s", group.Name)
	plainContent := fmt.Sprintf("%s (%s) wants to join %s.\n\nApprove: %s\nDeny: %s",
		pending.DisplayLabel(), pending.Email, group.Name, approveURL, denyURL)
	htmlContent := joinRequestEmailBody(group.Name, pending.DisplayLabel(), pending.Email, approveURL, denyURL)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	sent := 0
	for _, managerEmail := range group.Managers {
		to := mail.NewEmail("", managerEmail)
		message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

		response, err := s.client.Send(message)
		if err != nil {
			log.Printf("Error: failed to email manager %s for group %s: %v", managerEmail, group.ID, err)
			continue
		}
		if response.StatusCode >= 400 {
			log.Printf("Error: failed to email manager %s for group %s: status %d", managerEmail, group.ID, response.StatusCode)
			continue
		}
		sent++
	}
	log.Printf("Sent %d join request notification(s) for %s -> %s", sent, pending.DisplayLabel(), group.Name)
}

func joinRequestEmailBody(groupName, displayName, email, approveURL, denyURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background:#1a1a1a;font-family:Arial,sans-serif;">
  <div style="max-width:480px;margin:0 auto;padding:32px 24px;">
    <div style="text-align:center;margin-bottom:24px;">
      <span style="font-size:48px;">&#127828;</span>
      <h1 style="color:#bf5700;font-size:24px;margin:8px 0 0;">Lunch Bunch</h1>
    </div>
    <div style="background:#2c2c2c;border-radius:12px;padding:24px;border:1px solid #4a4a4a;">
      <h2 style="color:#f5e6d0;font-size:18px;margin:0 0 16px;">New Member Request</h2>
      <p style="color:#a0a0a0;font-size:15px;margin:0 0 8px;">
        Someone wants to join <strong style="color:#c4841d;">%s</strong>:
      </p>
      <div style="background:#1a1a1a;border-radius:8px;padding:16px;margin:16px 0;">
        <p style="color:#f5e6d0;font-size:16px;margin:0 0 4px;font-weight:bold;">%s</p>
        <p style="color:#a0a0a0;font-size:14px;margin:0;">%s</p>
      </div>
      <div style="text-align:center;margin-top:24px;">
        <a href="%s" style="display:inline-block;padding:12px 32px;background:#bf5700;color:#fff;text-decoration:none;border-radius:8px;font-weight:bold;font-size:15px;margin-right:12px;">Approve</a>
        <a href="%s" style="display:inline-block;padding:12px 32px;background:#e74c3c;color:#fff;text-decoration:none;border-radius:8px;font-weight:bold;font-size:15px;">Deny</a>
      </div>
    </div>
    <p style="color:#666;font-size:12px;text-align:center;margin-top:16px;">
      You're receiving this because you manage %s on Lunch Bunch.
    </p>
  </div>
</body>
</html>`, groupName, displayName, email, approveURL, denyURL, groupName)
}
