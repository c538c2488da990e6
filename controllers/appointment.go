package controllers

import (
	"errors"
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

type CreateAppointmentInput struct {
	PetID       string    `json:"petId" binding:"required"`
	GroomerID   *string   `json:"groomerId"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	TotalPrice  float64   `json:"totalPrice"`
	Notes       string    `json:"notes"`

	// Tracking token from a reminder deep link, if the booking came from one
	Ref string `json:"ref"`
}

type UpdateAppointmentInput struct {
	GroomerID   *string    `json:"groomerId"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	TotalPrice  *float64   `json:"totalPrice"`
	Notes       *string    `json:"notes"`
}

type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// CreateAppointment books an appointment, honoring blocked dates and linking
// the booking back to the reminder that produced it when one exists
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	petUUID, err := uuid.Parse(input.PetID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	var pet models.Pet
	if err := config.DB.First(&pet, "id = ?", petUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	if blocked, reason := isDateBlocked(input.ScheduledAt); blocked {
		utils.RespondWithError(c, http.StatusConflict, "Date is unavailable: "+reason)
		return
	}

	appointment := models.Appointment{
		PetID:       pet.ID,
		CustomerID:  pet.CustomerID,
		ScheduledAt: input.ScheduledAt,
		Status:      models.AppointmentPending,
		TotalPrice:  input.TotalPrice,
		Notes:       input.Notes,
	}

	if input.GroomerID != nil {
		groomerUUID, err := uuid.Parse(*input.GroomerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid groomer ID format")
			return
		}
		appointment.GroomerID = &groomerUUID
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	// Credit the reminder that converted into this booking, if any
	linker := services.NewConversionLinker(config.DB)
	if _, err := linker.LinkBooking(pet.CustomerID, appointment.ID, input.Ref, time.Now()); err != nil {
		// Linking is best-effort; the booking itself already succeeded
		c.Error(err)
	}

	c.JSON(http.StatusCreated, appointment)
}

func GetAppointments(c *gin.Context) {
	query := config.DB.Model(&models.Appointment{}).Preload("Pet").Preload("Customer")

	if petID := c.Query("petId"); petID != "" {
		query = query.Where("pet_id = ?", petID)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("scheduled_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("scheduled_at <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_at").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func GetAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Pet").Preload("Customer").
		First(&appointment, "id = ?", appointmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

func UpdateAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.GroomerID != nil {
		groomerUUID, err := uuid.Parse(*input.GroomerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid groomer ID format")
			return
		}
		appointment.GroomerID = &groomerUUID
	}
	if input.ScheduledAt != nil {
		appointment.ScheduledAt = *input.ScheduledAt
	}
	if input.TotalPrice != nil {
		appointment.TotalPrice = *input.TotalPrice
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentStatus moves an appointment through its lifecycle and
// awards loyalty points on completion
func UpdateAppointmentStatus(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.IsValidAppointmentStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	wasCompleted := appointment.Status == models.AppointmentCompleted
	appointment.Status = input.Status

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}

	if input.Status == models.AppointmentCompleted && !wasCompleted {
		awardLoyaltyPoints(appointment)
	}

	c.JSON(http.StatusOK, appointment)
}

func DeleteAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Where("id = ?", appointmentUUID).Delete(&models.Appointment{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

func awardLoyaltyPoints(appointment models.Appointment) {
	var loyalty models.LoyaltySettings
	if err := config.DB.First(&loyalty).Error; err != nil || !loyalty.IsActive {
		return
	}
	points := int(appointment.TotalPrice * loyalty.PointsPerDollar)
	if points <= 0 {
		return
	}
	config.DB.Model(&models.Customer{}).Where("id = ?", appointment.CustomerID).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))
}

// isDateBlocked checks one-off and recurring closures
func isDateBlocked(t time.Time) (bool, string) {
	day := utils.BeginningOfDay(t)

	var blocks []models.BlockedDate
	if err := config.DB.Find(&blocks).Error; err != nil {
		return false, ""
	}
	for _, b := range blocks {
		blockDay := utils.BeginningOfDay(b.Date)
		if b.Recurring {
			if blockDay.Month() == day.Month() && blockDay.Day() == day.Day() {
				return true, b.Reason
			}
		} else if blockDay.Equal(day) {
			return true, b.Reason
		}
	}
	return false, ""
}
