// controllers/notification.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	logStore     *services.NotificationLogStore
	logStoreOnce sync.Once
)

// sharedLogStore returns the process-wide notification log store. One async
// updater goroutine serves every request.
func sharedLogStore() *services.NotificationLogStore {
	logStoreOnce.Do(func() {
		logStore = services.NewNotificationLogStore(config.DB)
	})
	return logStore
}

// GetNotifications queries the notification log with filters and pagination
func GetNotifications(c *gin.Context) {
	filter := services.NotificationLogFilter{
		Type:    c.Query("type"),
		Channel: c.Query("channel"),
		Status:  c.Query("status"),
	}

	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		filter.CustomerID = &customerUUID
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp")
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp")
			return
		}
		filter.To = &t
	}
	if isTest := c.Query("test"); isTest != "" {
		v := isTest == "true"
		filter.IsTest = &v
	}
	if limit := c.Query("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		filter.Offset, _ = strconv.Atoi(offset)
	}

	entries, total, err := sharedLogStore().Query(filter)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to query notification log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"entries": entries,
	})
}

func GetNotification(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	entry, err := sharedLogStore().Get(entryUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// RetryNotification re-attempts a failed send through the original channel
func RetryNotification(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	store := sharedLogStore()

	entry, err := store.Get(entryUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if entry.Status != models.NotificationFailed {
		utils.RespondWithError(c, http.StatusConflict, "Only failed notifications can be retried")
		return
	}

	var messageID string
	var sendErr error
	switch entry.Channel {
	case models.ChannelEmail:
		sender := services.NewEmailSenderFromEnv()
		messageID, sendErr = sender.Send(entry.Recipient, "Message from your groomer", entry.Body)
	case models.ChannelSMS:
		sender := services.NewSMSSenderFromEnv()
		messageID, sendErr = sender.Send(entry.Recipient, entry.Body)
	default:
		utils.RespondWithError(c, http.StatusConflict, "Unknown channel: "+entry.Channel)
		return
	}

	fields := map[string]interface{}{
		"retry_count": entry.RetryCount + 1,
	}
	if sendErr != nil {
		fields["status"] = models.NotificationFailed
		fields["error_message"] = sendErr.Error()
	} else {
		now := time.Now()
		fields["status"] = models.NotificationSent
		fields["error_message"] = ""
		fields["message_id"] = messageID
		fields["sent_at"] = &now
	}

	if err := store.Update(entry.ID, fields); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}

	updated, err := store.Get(entry.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, updated)
}
