// services/notification_log_test.go
package services

import (
	"testing"
	"time"

	"groompro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLogStore(t *testing.T) (*NotificationLogStore, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	store := NewNotificationLogStore(db)
	t.Cleanup(store.Close)
	return store, db
}

func seedLogEntry(t *testing.T, store *NotificationLogStore, channel, status string) models.NotificationLog {
	t.Helper()
	entry := models.NotificationLog{
		Type:      "reminder",
		Channel:   channel,
		Recipient: "someone@example.com",
		Status:    status,
	}
	require.NoError(t, store.Create(&entry))
	return entry
}

func TestLogUpdateRestrictedToAllowedFields(t *testing.T) {
	store, db := newTestLogStore(t)
	entry := seedLogEntry(t, store, models.ChannelEmail, models.NotificationPending)

	err := store.Update(entry.ID, map[string]interface{}{
		"status":    models.NotificationSent,
		"recipient": "attacker@example.com",
		"body":      "tampered",
	})
	require.NoError(t, err)

	var got models.NotificationLog
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	assert.Equal(t, models.NotificationSent, got.Status)
	assert.Equal(t, "someone@example.com", got.Recipient)
	assert.Empty(t, got.Body)
}

func TestLogUpdateRejectsEmptyFieldSet(t *testing.T) {
	store, _ := newTestLogStore(t)
	entry := seedLogEntry(t, store, models.ChannelSMS, models.NotificationPending)

	err := store.Update(entry.ID, map[string]interface{}{
		"recipient": "attacker@example.com",
	})
	assert.Error(t, err)
}

func TestEnqueueUpdateAppliesAsync(t *testing.T) {
	store, db := newTestLogStore(t)
	entry := seedLogEntry(t, store, models.ChannelEmail, models.NotificationSent)

	deliveredAt := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	store.EnqueueUpdate(entry.ID, map[string]interface{}{
		"status":       "delivered",
		"delivered_at": deliveredAt,
	})

	require.Eventually(t, func() bool {
		var got models.NotificationLog
		if err := db.First(&got, "id = ?", entry.ID).Error; err != nil {
			return false
		}
		return got.Status == "delivered" && got.DeliveredAt != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEnqueueUpdateCountsFailedWrites(t *testing.T) {
	store, _ := newTestLogStore(t)
	entry := seedLogEntry(t, store, models.ChannelEmail, models.NotificationSent)

	// No updatable fields means the async write fails and must be counted
	store.EnqueueUpdate(entry.ID, map[string]interface{}{
		"recipient": "attacker@example.com",
	})

	require.Eventually(t, func() bool {
		return store.DroppedUpdates() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueryFilters(t *testing.T) {
	store, db := newTestLogStore(t)

	customerID := uuid.New()
	mine := models.NotificationLog{
		CustomerID: &customerID,
		Type:       "reminder",
		Channel:    models.ChannelEmail,
		Recipient:  "mine@example.com",
		Status:     models.NotificationSent,
	}
	require.NoError(t, store.Create(&mine))
	seedLogEntry(t, store, models.ChannelSMS, models.NotificationFailed)
	seedLogEntry(t, store, models.ChannelEmail, models.NotificationFailed)

	entries, total, err := store.Query(NotificationLogFilter{Channel: models.ChannelEmail})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)

	entries, total, err = store.Query(NotificationLogFilter{Status: models.NotificationFailed})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)

	entries, total, err = store.Query(NotificationLogFilter{CustomerID: &customerID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "mine@example.com", entries[0].Recipient)

	// created_at range excluding everything
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	entries, total, err = store.Query(NotificationLogFilter{To: &past})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)

	var count int64
	require.NoError(t, db.Model(&models.NotificationLog{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestQueryPagination(t *testing.T) {
	store, _ := newTestLogStore(t)
	for i := 0; i < 5; i++ {
		seedLogEntry(t, store, models.ChannelEmail, models.NotificationSent)
	}

	entries, total, err := store.Query(NotificationLogFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, entries, 2)

	entries, total, err = store.Query(NotificationLogFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, entries, 1)
}

func TestGet(t *testing.T) {
	store, _ := newTestLogStore(t)
	entry := seedLogEntry(t, store, models.ChannelEmail, models.NotificationSent)

	got, err := store.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	_, err = store.Get(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
