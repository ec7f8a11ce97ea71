package handlers

import (
	"net/http"
	"testing"

	"lunchbunch/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastBallot(t *testing.T) {
	router, db := setupTestEnvironment(t)
	seedGroup(t, db, "g1")

	w := postJSON(router, "/groups/g1/ballots", gin.H{
		"user_id":    "u1",
		"restaurant": "Zebra Diner",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var ballots []models.Ballot
	require.NoError(t, db.Where("group_id = ?", "g1").Find(&ballots).Error)
	require.Len(t, ballots, 1)
	assert.Equal(t, "Zebra Diner", ballots[0].Restaurant)
	assert.Equal(t, "u1", ballots[0].UserID)
	assert.NotEmpty(t, ballots[0].VoteDate)
}

func TestCastBallotRevoteReplacesChoice(t *testing.T) {
	router, db := setupTestEnvironment(t)
	seedGroup(t, db, "g1")

	postJSON(router, "/groups/g1/ballots", gin.H{"user_id": "u1", "restaurant": "Zebra Diner"})
	w := postJSON(router, "/groups/g1/ballots", gin.H{"user_id": "u1", "restaurant": "Al's Tacos"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var ballots []models.Ballot
	require.NoError(t, db.Where("group_id = ?", "g1").Find(&ballots).Error)
	require.Len(t, ballots, 1)
	assert.Equal(t, "Al's Tacos", ballots[0].Restaurant)
}

func TestCastBallotUnknownGroup(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	w := postJSON(router, "/groups/ghost/ballots", gin.H{"user_id": "u1", "restaurant": "Zebra Diner"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCastBallotInvalidInput(t *testing.T) {
	router, db := setupTestEnvironment(t)
	seedGroup(t, db, "g1")

	w := postJSON(router, "/groups/g1/ballots", gin.H{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
