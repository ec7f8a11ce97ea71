package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignActionRoundTrip(t *testing.T) {
	token := SignAction(ActionApprove, "lunch-crew", "user-42")

	assert.Len(t, token, TokenLength)
	assert.Regexp(t, "^[0-9a-f]{16}$", token)
	assert.True(t, VerifyAction(ActionApprove, "lunch-crew", "user-42", token))
}

func TestSignActionIsDeterministic(t *testing.T) {
	a := SignAction(ActionDeny, "g1", "u1")
	b := SignAction(ActionDeny, "g1", "u1")
	assert.Equal(t, a, b)
}

func TestSignActionInputsAllMatter(t *testing.T) {
	base := SignAction(ActionApprove, "g1", "u1")

	assert.NotEqual(t, base, SignAction(ActionDeny, "g1", "u1"))
	assert.NotEqual(t, base, SignAction(ActionApprove, "g2", "u1"))
	assert.NotEqual(t, base, SignAction(ActionApprove, "g1", "u2"))
}

func TestVerifyActionRejectsForgedToken(t *testing.T) {
	token := SignAction(ActionApprove, "g1", "u1")

	assert.False(t, VerifyAction(ActionDeny, "g1", "u1", token))
	assert.False(t, VerifyAction(ActionApprove, "g1", "u1", "0000000000000000"))
	assert.False(t, VerifyAction(ActionApprove, "g1", "u1", ""))
	assert.False(t, VerifyAction(ActionApprove, "g1", "u1", token+"ff"))
}
