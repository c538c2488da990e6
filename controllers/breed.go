package controllers

import (
	"errors"
	"net/http"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBreedInput struct {
	Name                   string `json:"name" binding:"required"`
	GroomingFrequencyWeeks int    `json:"groomingFrequencyWeeks" binding:"required,min=1,max=52"`
	CustomReminderMessage  string `json:"customReminderMessage"`
}

type UpdateBreedInput struct {
	Name                   *string `json:"name"`
	GroomingFrequencyWeeks *int    `json:"groomingFrequencyWeeks" binding:"omitempty,min=1,max=52"`
	CustomReminderMessage  *string `json:"customReminderMessage"`
}

func CreateBreed(c *gin.Context) {
	var input CreateBreedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Breed
	if err := config.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Breed already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	breed := models.Breed{
		Name:                   input.Name,
		GroomingFrequencyWeeks: input.GroomingFrequencyWeeks,
		CustomReminderMessage:  input.CustomReminderMessage,
	}

	if err := config.DB.Create(&breed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create breed")
		return
	}

	c.JSON(http.StatusCreated, breed)
}

func GetBreeds(c *gin.Context) {
	var breeds []models.Breed
	if err := config.DB.Order("name").Find(&breeds).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve breeds")
		return
	}
	c.JSON(http.StatusOK, breeds)
}

func GetBreed(c *gin.Context) {
	breedUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid breed ID format")
		return
	}

	var breed models.Breed
	if err := config.DB.First(&breed, "id = ?", breedUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Breed not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, breed)
}

func UpdateBreed(c *gin.Context) {
	breedUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid breed ID format")
		return
	}

	var input UpdateBreedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var breed models.Breed
	if err := config.DB.First(&breed, "id = ?", breedUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Breed not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		breed.Name = *input.Name
	}
	if input.GroomingFrequencyWeeks != nil {
		breed.GroomingFrequencyWeeks = *input.GroomingFrequencyWeeks
	}
	if input.CustomReminderMessage != nil {
		breed.CustomReminderMessage = *input.CustomReminderMessage
	}

	if err := config.DB.Save(&breed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update breed")
		return
	}

	c.JSON(http.StatusOK, breed)
}

func DeleteBreed(c *gin.Context) {
	breedUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid breed ID format")
		return
	}

	// Refuse to delete a breed still assigned to pets
	var petCount int64
	config.DB.Model(&models.Pet{}).Where("breed_id = ?", breedUUID).Count(&petCount)
	if petCount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Breed is still assigned to pets")
		return
	}

	result := config.DB.Where("id = ?", breedUUID).Delete(&models.Breed{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete breed")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Breed not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Breed deleted successfully"})
}
