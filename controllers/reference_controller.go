package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/models"
)

// ListCities handles GET /api/v1/cities - lists the seeded cities
func ListCities(c *gin.Context) {
	var cities []models.City
	if err := config.GetDB().Order("name ASC").Find(&cities).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch cities")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cities,
	})
}

// ListAdvertisementTypes handles GET /api/v1/advertisement-types - lists the
// seeded advertisement types
func ListAdvertisementTypes(c *gin.Context) {
	var types []models.AdvertisementType
	if err := config.GetDB().Order("name ASC").Find(&types).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch advertisement types")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    types,
	})
}
