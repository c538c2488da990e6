// controllers/reminder.go
package controllers

import (
	"net/http"
	"sync"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	reminderService     *services.ReminderService
	reminderServiceOnce sync.Once
)

func sharedReminderService() *services.ReminderService {
	reminderServiceOnce.Do(func() {
		reminderService = services.NewReminderService(config.DB,
			services.NewEmailSenderFromEnv(), services.NewSMSSenderFromEnv(), sharedLogStore())
	})
	return reminderService
}

// RunReminders triggers a reminder run immediately and returns the aggregate
// statistics. The daily cron job calls the same service entry point.
func RunReminders(c *gin.Context) {
	result := sharedReminderService().RunDailyReminders()
	c.JSON(http.StatusOK, result)
}

// GetReminderSends lists reminder send records, newest first
func GetReminderSends(c *gin.Context) {
	query := config.DB.Model(&models.CampaignSend{})

	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if petID := c.Query("petId"); petID != "" {
		query = query.Where("pet_id = ?", petID)
	}
	if converted := c.Query("converted"); converted == "true" {
		query = query.Where("booking_id IS NOT NULL")
	} else if converted == "false" {
		query = query.Where("booking_id IS NULL")
	}

	var sends []models.CampaignSend
	if err := query.Order("sent_at DESC").Limit(200).Find(&sends).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder sends")
		return
	}

	c.JSON(http.StatusOK, sends)
}

type LinkBookingInput struct {
	CustomerID string `json:"customerId"`
	BookingID  string `json:"bookingId" binding:"required"`
	TrackingID string `json:"trackingId"`
}

// LinkBooking attaches a completed booking to the reminder send that
// produced it, by tracking token or recency fallback
func LinkBooking(c *gin.Context) {
	var input LinkBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.CustomerID == "" && input.TrackingID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Either customerId or trackingId is required")
		return
	}

	bookingUUID, err := uuid.Parse(input.BookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var customerUUID uuid.UUID
	if input.CustomerID != "" {
		customerUUID, err = uuid.Parse(input.CustomerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
	}

	linker := services.NewConversionLinker(config.DB)
	linked, err := linker.LinkBooking(customerUUID, bookingUUID, input.TrackingID, time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"linked": linked})
}
