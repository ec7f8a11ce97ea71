package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"lunchbunch/internal/database"
	"lunchbunch/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpdateDevice registers the push token for a user's current device,
// creating the user row if this is the first thing we hear from them.
func UpdateDevice(c *gin.Context) {
	userID := c.Param("user_id")

	var request models.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	db := database.GetDB()
	user := models.User{ID: userID, PushToken: request.PushToken}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"push_token", "updated_at"}),
	}).Create(&user).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to register device", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

// UpdatePreferences updates a user's notification preferences and selected
// group. Only the fields present in the request body change.
func UpdatePreferences(c *gin.Context) {
	userID := c.Param("user_id")

	var request models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	db := database.GetDB()

	var user models.User
	err := db.Where("id = ?", userID).First(&user).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if isNew {
		// First contact: start from the defaults
		user = models.User{ID: userID, Reminders: true, WinnerAlerts: true}
	} else if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load user", err)
		return
	}

	if request.Reminders != nil {
		user.Reminders = *request.Reminders
	}
	if request.WinnerAlerts != nil {
		user.WinnerAlerts = *request.WinnerAlerts
	}
	if request.SelectedGroup != nil {
		user.SelectedGroup = *request.SelectedGroup
	}

	if isNew {
		// Select forces the boolean columns into the insert even when false;
		// a bare Create would let the column defaults win.
		err = db.Select("ID", "Reminders", "WinnerAlerts", "SelectedGroup", "CreatedAt", "UpdatedAt").Create(&user).Error
	} else {
		err = db.Save(&user).Error
	}
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update preferences", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
