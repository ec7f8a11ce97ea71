package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"lunchbunch/internal/database"
	"lunchbunch/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// JoinGroup handles a user's request to join a group. It creates the
// pending membership and fires the manager notification email in the
// background, the way the old document-creation trigger did.
func JoinGroup(c *gin.Context) {
	groupID := c.Param("group_id")

	var request models.JoinRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	db := database.GetDB()

	// Check if group exists
	var group models.Group
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		log.Printf("Error: Group not found: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	// Check if user is already a member
	var member models.Member
	if err := db.Where("group_id = ? AND user_id = ?", groupID, request.UserID).First(&member).Error; err == nil {
		log.Printf("Error: Already a member")
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to check group membership", err)
		return
	}

	// Check for an existing pending request
	var existing models.PendingMember
	if err := db.Where("group_id = ? AND user_id = ?", groupID, request.UserID).First(&existing).Error; err == nil {
		log.Printf("Error: Join request already pending")
		c.JSON(http.StatusConflict, gin.H{"error": "Join request already pending"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to check pending requests", err)
		return
	}

	pending := models.PendingMember{
		GroupID:     groupID,
		UserID:      request.UserID,
		Email:       request.Email,
		DisplayName: request.DisplayName,
		RequestedAt: time.Now(),
	}
	if err := db.Create(&pending).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to request to join group", err)
		return
	}

	// Notify managers off the request path; failures are logged inside.
	if emailService != nil {
		go emailService.NotifyManagers(group, pending)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Join request submitted"})
}

// GetGroupByID handles fetching a single group's details by ID
func GetGroupByID(c *gin.Context) {
	groupID := c.Param("group_id")
	db := database.GetDB()

	var group models.Group
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		log.Printf("Error: Group not found: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var members []models.Member
	if err := db.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch members", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group":   group,
		"members": members,
	})
}
