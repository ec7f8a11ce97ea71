package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Actions that can be authorized by a signed link.
const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

// TokenLength is the number of hex characters in an action token (the
// low 64 bits of the HMAC digest).
const TokenLength = 16

// Default secret matches the one the mobile clients were shipped against.
// Set APPROVE_LINK_SECRET to rotate it; note that rotation invalidates
// every link already sitting in a manager's inbox.
const defaultActionSecret = "lunch-bunch-approve-secret-2026"

func actionSecret() []byte {
	if s := os.Getenv("APPROVE_LINK_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte(defaultActionSecret)
}

// SignAction derives the capability token embedded in approve/deny links.
// It is deterministic: the same (action, group, user) triple always yields
// the same token, so links stay valid until the request is consumed.
func SignAction(action, groupID, userID string) string {
	mac := hmac.New(sha256.New, actionSecret())
	fmt.Fprintf(mac, "%s:%s:%s", action, groupID, userID)
	return hex.EncodeToString(mac.Sum(nil))[:TokenLength]
}

// VerifyAction reports whether token authorizes the given action on the
// given (group, user) pair.
func VerifyAction(action, groupID, userID, token string) bool {
	expected := SignAction(action, groupID, userID)
	return hmac.Equal([]byte(token), []byte(expected))
}
