package handlers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"lunchbunch/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestEnvironment wires the router against a per-test in-memory
// SQLite database. The email service is left nil: join requests still
// persist, only the manager notification is skipped.
func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	Init(nil, time.UTC)

	t.Cleanup(func() {
		database.DB = nil
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	router := gin.New()
	router.GET("/", HomeHandler)
	router.GET("/health", HealthHandler)
	router.GET("/approve", ApproveMember)
	router.GET("/groups/:group_id", GetGroupByID)
	router.POST("/groups/:group_id/join", JoinGroup)
	router.POST("/groups/:group_id/ballots", CastBallot)
	router.PUT("/users/:user_id/device", UpdateDevice)
	router.PUT("/users/:user_id/preferences", UpdatePreferences)

	return router, db
}
