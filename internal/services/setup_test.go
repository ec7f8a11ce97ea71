package services

import (
	"fmt"
	"strings"
	"testing"

	"lunchbunch/internal/database"
	"lunchbunch/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory SQLite database with the full
// schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// seedUser inserts a user row verbatim. A plain Create would let the
// column defaults override explicit false preference flags.
func seedUser(t *testing.T, db *gorm.DB, user models.User) {
	t.Helper()
	err := db.Model(&models.User{}).Create(map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"display_name":   user.DisplayName,
		"push_token":     user.PushToken,
		"reminders":      user.Reminders,
		"winner_alerts":  user.WinnerAlerts,
		"selected_group": user.SelectedGroup,
		"created_at":     user.CreatedAt,
		"updated_at":     user.UpdatedAt,
	}).Error
	require.NoError(t, err)
}
