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

type CreatePetInput struct {
	CustomerID string  `json:"customerId" binding:"required"`
	BreedID    *string `json:"breedId"`
	Name       string  `json:"name" binding:"required"`
	SizeClass  string  `json:"sizeClass" binding:"omitempty,oneof=small medium large giant"`
	Notes      string  `json:"notes"`
}

type UpdatePetInput struct {
	BreedID   *string `json:"breedId"`
	Name      *string `json:"name"`
	SizeClass *string `json:"sizeClass" binding:"omitempty,oneof=small medium large giant"`
	Notes     *string `json:"notes"`
	IsActive  *bool   `json:"isActive"`
}

func CreatePet(c *gin.Context) {
	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	pet := models.Pet{
		CustomerID: customerUUID,
		Name:       input.Name,
		Notes:      input.Notes,
		IsActive:   true,
	}
	if input.SizeClass != "" {
		pet.SizeClass = input.SizeClass
	}

	if input.BreedID != nil {
		breedUUID, err := uuid.Parse(*input.BreedID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid breed ID format")
			return
		}
		var breed models.Breed
		if err := config.DB.First(&breed, "id = ?", breedUUID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Breed not found")
			return
		}
		pet.BreedID = &breedUUID
	}

	if err := config.DB.Create(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func GetPets(c *gin.Context) {
	query := config.DB.Model(&models.Pet{}).Preload("Breed")

	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var pets []models.Pet
	if err := query.Order("name").Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}

func GetPet(c *gin.Context) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	var pet models.Pet
	if err := config.DB.Preload("Breed").Preload("Customer").First(&pet, "id = ?", petUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, pet)
}

func UpdatePet(c *gin.Context) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pet models.Pet
	if err := config.DB.First(&pet, "id = ?", petUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.BreedID != nil {
		breedUUID, err := uuid.Parse(*input.BreedID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid breed ID format")
			return
		}
		pet.BreedID = &breedUUID
	}
	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.SizeClass != nil {
		pet.SizeClass = *input.SizeClass
	}
	if input.Notes != nil {
		pet.Notes = *input.Notes
	}
	if input.IsActive != nil {
		pet.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	c.JSON(http.StatusOK, pet)
}

// DeletePet deactivates a pet; pets are retired, never hard-deleted
func DeletePet(c *gin.Context) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	result := config.DB.Model(&models.Pet{}).Where("id = ?", petUUID).Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate pet")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deactivated"})
}
