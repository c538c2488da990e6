package controllers

import (
	"errors"
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBookingSettings returns the single booking configuration row, creating
// it with defaults on first access
func GetBookingSettings(c *gin.Context) {
	settings, err := loadBookingSettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type UpdateBookingSettingsInput struct {
	BufferMinutes         *int          `json:"bufferMinutes" binding:"omitempty,min=0,max=240"`
	MaxAppointmentsPerDay *int          `json:"maxAppointmentsPerDay" binding:"omitempty,min=1"`
	LeadTimeHours         *int          `json:"leadTimeHours" binding:"omitempty,min=0"`
	WorkingHours          *models.JSONB `json:"workingHours"`
}

func UpdateBookingSettings(c *gin.Context) {
	var input UpdateBookingSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := loadBookingSettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking settings")
		return
	}

	if input.BufferMinutes != nil {
		settings.BufferMinutes = *input.BufferMinutes
	}
	if input.MaxAppointmentsPerDay != nil {
		settings.MaxAppointmentsPerDay = *input.MaxAppointmentsPerDay
	}
	if input.LeadTimeHours != nil {
		settings.LeadTimeHours = *input.LeadTimeHours
	}
	if input.WorkingHours != nil {
		settings.WorkingHours = *input.WorkingHours
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func loadBookingSettings() (*models.BookingSettings, error) {
	var settings models.BookingSettings
	err := config.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.BookingSettings{
			BufferMinutes:         15,
			MaxAppointmentsPerDay: 20,
			LeadTimeHours:         24,
			WorkingHours:          models.JSONB{},
		}
		err = config.DB.Create(&settings).Error
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

type CreateBlockedDateInput struct {
	Date      time.Time `json:"date" binding:"required"`
	Reason    string    `json:"reason"`
	Recurring bool      `json:"recurring"`
}

func CreateBlockedDate(c *gin.Context) {
	var input CreateBlockedDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	blocked := models.BlockedDate{
		Date:      utils.BeginningOfDay(input.Date),
		Reason:    input.Reason,
		Recurring: input.Recurring,
	}

	if err := config.DB.Create(&blocked).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create blocked date")
		return
	}

	c.JSON(http.StatusCreated, blocked)
}

func GetBlockedDates(c *gin.Context) {
	var dates []models.BlockedDate
	if err := config.DB.Order("date").Find(&dates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve blocked dates")
		return
	}
	c.JSON(http.StatusOK, dates)
}

func DeleteBlockedDate(c *gin.Context) {
	blockedUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid blocked date ID format")
		return
	}

	result := config.DB.Where("id = ?", blockedUUID).Delete(&models.BlockedDate{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete blocked date")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Blocked date not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blocked date removed"})
}

// GetLoyaltySettings returns the loyalty program configuration, creating the
// row with defaults on first access
func GetLoyaltySettings(c *gin.Context) {
	settings, err := loadLoyaltySettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load loyalty settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type UpdateLoyaltySettingsInput struct {
	PointsPerDollar     *float64 `json:"pointsPerDollar" binding:"omitempty,min=0"`
	RedeemRate          *float64 `json:"redeemRate" binding:"omitempty,min=0"`
	ReferralBonusPoints *int     `json:"referralBonusPoints" binding:"omitempty,min=0"`
	IsActive            *bool    `json:"isActive"`
}

func UpdateLoyaltySettings(c *gin.Context) {
	var input UpdateLoyaltySettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := loadLoyaltySettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load loyalty settings")
		return
	}

	if input.PointsPerDollar != nil {
		settings.PointsPerDollar = *input.PointsPerDollar
	}
	if input.RedeemRate != nil {
		settings.RedeemRate = *input.RedeemRate
	}
	if input.ReferralBonusPoints != nil {
		settings.ReferralBonusPoints = *input.ReferralBonusPoints
	}
	if input.IsActive != nil {
		settings.IsActive = *input.IsActive
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update loyalty settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func loadLoyaltySettings() (*models.LoyaltySettings, error) {
	var settings models.LoyaltySettings
	err := config.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.LoyaltySettings{
			PointsPerDollar:     1.0,
			RedeemRate:          0.01,
			ReferralBonusPoints: 100,
			IsActive:            true,
		}
		err = config.DB.Create(&settings).Error
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetStaff lists staff accounts with their commission rates
func GetStaff(c *gin.Context) {
	var staff []models.User
	if err := config.DB.Select("id, email, name, phone, role, commission_rate, is_active, last_login").
		Order("name").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

type UpdateCommissionInput struct {
	CommissionRate float64 `json:"commissionRate" binding:"min=0,max=100"`
}

// UpdateCommission sets a staff member's commission percentage
func UpdateCommission(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", staffUUID).
		Update("commission_rate", input.CommissionRate)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update commission rate")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commission rate updated"})
}
