package handlers

import (
	"log"
	"net/http"
	"os"
	"time"

	"lunchbunch/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	emailService *services.EmailService
	serviceZone  = time.UTC
)

// Init wires the handler package's collaborators: the email service used
// by the join-request trigger and the civil time zone that defines the
// voting day.
func Init(email *services.EmailService, loc *time.Location) {
	emailService = email
	if loc != nil {
		serviceZone = loc
	}
}

// voteDate returns today's ballot date key in the service time zone.
func voteDate() string {
	return time.Now().In(serviceZone).Format("2006-01-02")
}

// appURL is where the HTML pages link back to.
func appURL() string {
	if u := os.Getenv("APP_PUBLIC_URL"); u != "" {
		return u
	}
	return "https://lunchbunch.app"
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Lunch Bunch!")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
