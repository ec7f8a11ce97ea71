package handlers

import (
	"fmt"
	"log"
	"net/http"

	"lunchbunch/internal/database"
	"lunchbunch/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// CastBallot records a user's restaurant choice for today. Voting again
// replaces the earlier choice, so each user holds one ballot per group-day.
func CastBallot(c *gin.Context) {
	groupID := c.Param("group_id")

	var request models.CastBallotRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	db := database.GetDB()

	var group models.Group
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		log.Printf("Error: Group not found: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	ballot := models.Ballot{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		VoteDate:   voteDate(),
		UserID:     request.UserID,
		Restaurant: request.Restaurant,
	}

	// Upsert on (group, date, user) so a re-vote overwrites the old choice
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "vote_date"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"restaurant", "updated_at"}),
	}).Create(&ballot).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to cast ballot", err)
		return
	}

	c.JSON(http.StatusCreated, ballot)
}
