// controllers/store_test.go
package controllers

import (
	"testing"

	"groompro-backend/config"
	"groompro-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSharedStoresAreSingletons(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:controllers-shared?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NotificationLog{}))
	config.DB = db

	// Every request must reuse the same store and its single updater
	// goroutine rather than spawning one per call.
	require.Same(t, sharedLogStore(), sharedLogStore())
	require.Same(t, sharedReminderService(), sharedReminderService())
}
