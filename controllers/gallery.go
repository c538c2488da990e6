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

type CreateGalleryImageInput struct {
	Title     string `json:"title" binding:"required"`
	URL       string `json:"url" binding:"required,url"`
	Category  string `json:"category"`
	SortOrder int    `json:"sortOrder"`
}

type UpdateGalleryImageInput struct {
	Title     *string `json:"title"`
	URL       *string `json:"url" binding:"omitempty,url"`
	Category  *string `json:"category"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

func CreateGalleryImage(c *gin.Context) {
	var input CreateGalleryImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image := models.GalleryImage{
		Title:     input.Title,
		URL:       input.URL,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.Category != "" {
		image.Category = input.Category
	}

	if err := config.DB.Create(&image).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create gallery image")
		return
	}

	c.JSON(http.StatusCreated, image)
}

func GetGalleryImages(c *gin.Context) {
	query := config.DB.Model(&models.GalleryImage{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var images []models.GalleryImage
	if err := query.Order("sort_order, created_at DESC").Find(&images).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve gallery images")
		return
	}
	c.JSON(http.StatusOK, images)
}

func UpdateGalleryImage(c *gin.Context) {
	imageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid image ID format")
		return
	}

	var input UpdateGalleryImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var image models.GalleryImage
	if err := config.DB.First(&image, "id = ?", imageUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Gallery image not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		image.Title = *input.Title
	}
	if input.URL != nil {
		image.URL = *input.URL
	}
	if input.Category != nil {
		image.Category = *input.Category
	}
	if input.SortOrder != nil {
		image.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		image.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&image).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update gallery image")
		return
	}

	c.JSON(http.StatusOK, image)
}

func DeleteGalleryImage(c *gin.Context) {
	imageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid image ID format")
		return
	}

	result := config.DB.Where("id = ?", imageUUID).Delete(&models.GalleryImage{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete gallery image")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Gallery image not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gallery image deleted successfully"})
}

type CreateBannerInput struct {
	Title    string     `json:"title" binding:"required"`
	ImageURL string     `json:"imageUrl" binding:"required,url"`
	LinkURL  string     `json:"linkUrl"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

type UpdateBannerInput struct {
	Title    *string    `json:"title"`
	ImageURL *string    `json:"imageUrl" binding:"omitempty,url"`
	LinkURL  *string    `json:"linkUrl"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
	IsActive *bool      `json:"isActive"`
}

func CreateBanner(c *gin.Context) {
	var input CreateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	banner := models.Banner{
		Title:    input.Title,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		IsActive: true,
	}

	if err := config.DB.Create(&banner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create banner")
		return
	}

	c.JSON(http.StatusCreated, banner)
}

func GetBanners(c *gin.Context) {
	var banners []models.Banner
	if err := config.DB.Order("created_at DESC").Find(&banners).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve banners")
		return
	}
	c.JSON(http.StatusOK, banners)
}

func UpdateBanner(c *gin.Context) {
	bannerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid banner ID format")
		return
	}

	var input UpdateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var banner models.Banner
	if err := config.DB.First(&banner, "id = ?", bannerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Banner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		banner.Title = *input.Title
	}
	if input.ImageURL != nil {
		banner.ImageURL = *input.ImageURL
	}
	if input.LinkURL != nil {
		banner.LinkURL = *input.LinkURL
	}
	if input.StartsAt != nil {
		banner.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		banner.EndsAt = input.EndsAt
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&banner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update banner")
		return
	}

	c.JSON(http.StatusOK, banner)
}

func DeleteBanner(c *gin.Context) {
	bannerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid banner ID format")
		return
	}

	result := config.DB.Where("id = ?", bannerUUID).Delete(&models.Banner{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete banner")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Banner not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
