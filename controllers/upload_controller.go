package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/services"
)

// UploadAdvertisementPhoto handles POST /api/v1/advertisement/:id/photo -
// uploads a listing photo to S3 (owner only). An existing photo is replaced.
func UploadAdvertisementPhoto(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseAdvertisementID(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var ad models.Advertisement
	if err := db.First(&ad, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "ADVERTISEMENT_NOT_FOUND", "Advertisement not found")
		return
	}

	if ad.OwnerID != user.ID && !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "NOT_OWNER", "Only the advertisement owner or an administrator may do this")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "A photo file is required")
		return
	}

	photoService := services.GetPhotoService()
	if photoService == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Photo storage is not configured")
		return
	}

	photoKey, err := photoService.UploadPhoto(fileHeader)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Replace any previous photo after the new one is stored.
	oldKey := ad.PhotoS3Key
	if err := db.Model(&ad).Update("photo_s3_key", photoKey).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save photo reference")
		return
	}
	if oldKey != nil && *oldKey != photoKey {
		// The new photo is already live; an orphaned old object is tolerable.
		if err := photoService.DeletePhoto(*oldKey); err != nil {
			log.Printf("warning: failed to delete replaced photo %s: %v", *oldKey, err)
		}
	}

	attachPhotoURL(&ad)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ad,
	})
}
