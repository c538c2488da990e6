package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/services"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCampaignInput struct {
	Name         string     `json:"name" binding:"required"`
	Channel      string     `json:"channel" binding:"required,oneof=email sms"`
	Subject      string     `json:"subject"`
	Body         string     `json:"body" binding:"required"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

type UpdateCampaignInput struct {
	Name         *string    `json:"name"`
	Subject      *string    `json:"subject"`
	Body         *string    `json:"body"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

func CreateCampaign(c *gin.Context) {
	var input CreateCampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	campaign := models.Campaign{
		Name:         input.Name,
		Channel:      input.Channel,
		Subject:      input.Subject,
		Body:         input.Body,
		Status:       models.CampaignDraft,
		ScheduledFor: input.ScheduledFor,
	}
	if input.ScheduledFor != nil {
		campaign.Status = models.CampaignScheduled
	}

	if err := config.DB.Create(&campaign).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create campaign")
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func GetCampaigns(c *gin.Context) {
	var campaigns []models.Campaign
	if err := config.DB.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func UpdateCampaign(c *gin.Context) {
	campaignUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid campaign ID format")
		return
	}

	var input UpdateCampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var campaign models.Campaign
	if err := config.DB.First(&campaign, "id = ?", campaignUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Campaign not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if campaign.Status == models.CampaignSent {
		utils.RespondWithError(c, http.StatusConflict, "Campaign has already been sent")
		return
	}

	if input.Name != nil {
		campaign.Name = *input.Name
	}
	if input.Subject != nil {
		campaign.Subject = *input.Subject
	}
	if input.Body != nil {
		campaign.Body = *input.Body
	}
	if input.ScheduledFor != nil {
		campaign.ScheduledFor = input.ScheduledFor
		campaign.Status = models.CampaignScheduled
	}

	if err := config.DB.Save(&campaign).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update campaign")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

func DeleteCampaign(c *gin.Context) {
	campaignUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid campaign ID format")
		return
	}

	result := config.DB.Where("id = ? AND status != ?", campaignUUID, models.CampaignSent).
		Delete(&models.Campaign{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete campaign")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Campaign not found or already sent")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}

// SendCampaign fans the campaign out to every opted-in customer on its
// channel, logging each attempt
func SendCampaign(c *gin.Context) {
	campaignUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid campaign ID format")
		return
	}

	var campaign models.Campaign
	if err := config.DB.First(&campaign, "id = ?", campaignUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Campaign not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if campaign.Status == models.CampaignSent {
		utils.RespondWithError(c, http.StatusConflict, "Campaign has already been sent")
		return
	}

	query := config.DB.Where("is_active = ?", true)
	if campaign.Channel == models.ChannelEmail {
		query = query.Where("email_promotional = ? AND email != ''", true)
	} else {
		query = query.Where("sms_promotional = ? AND phone != ''", true)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch recipients")
		return
	}

	logs := sharedLogStore()
	email := services.NewEmailSenderFromEnv()
	sms := services.NewSMSSenderFromEnv()

	sent := 0
	for _, customer := range customers {
		entry := models.NotificationLog{
			CustomerID: &customer.ID,
			Type:       "campaign",
			Channel:    campaign.Channel,
			Body:       campaign.Body,
			Status:     models.NotificationPending,
		}

		var messageID string
		var sendErr error
		if campaign.Channel == models.ChannelEmail {
			entry.Recipient = customer.Email
			messageID, sendErr = email.Send(customer.Email, campaign.Subject, campaign.Body)
		} else {
			entry.Recipient = customer.Phone
			messageID, sendErr = sms.Send(customer.Phone, campaign.Body)
		}

		if sendErr != nil {
			log.Printf("Campaign %s: failed to reach %s: %v", campaign.ID, entry.Recipient, sendErr)
			entry.Status = models.NotificationFailed
			entry.ErrorMessage = sendErr.Error()
		} else {
			entry.Status = models.NotificationSent
			entry.MessageID = messageID
			now := time.Now()
			entry.SentAt = &now
			sent++
		}

		if err := logs.Create(&entry); err != nil {
			log.Printf("Campaign %s: failed to log send to %s: %v", campaign.ID, entry.Recipient, err)
		}
	}

	now := time.Now()
	config.DB.Model(&campaign).Updates(map[string]interface{}{
		"status":     models.CampaignSent,
		"sent_at":    &now,
		"sent_count": sent,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Campaign sent",
		"recipients": len(customers),
		"sent":       sent,
	})
}
