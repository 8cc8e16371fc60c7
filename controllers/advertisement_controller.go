package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/repositories"
	"github.com/temirlan-b/baraholka-api/services"
)

// CreateAdvertisementRequest represents the request body for creating an advertisement
type CreateAdvertisementRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"omitempty"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	CityID      uint    `json:"city_id" binding:"required"`
	TypeID      uint    `json:"type_id" binding:"required"`
}

// UpdateAdvertisementRequest represents the request body for updating an advertisement
type UpdateAdvertisementRequest struct {
	Title       string   `json:"title" binding:"omitempty"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
}

// parseAdvertisementID extracts the :id path parameter
func parseAdvertisementID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Advertisement ID must be a number")
		return 0, false
	}
	return uint(id), true
}

// attachPhotoURL fills the computed presigned photo URL when the
// advertisement has a stored photo and the photo service is configured
func attachPhotoURL(ad *models.Advertisement) {
	photoService := services.GetPhotoService()
	if photoService == nil || ad.PhotoS3Key == nil {
		return
	}
	if url, err := photoService.GetPhotoURL(*ad.PhotoS3Key); err == nil && url != "" {
		ad.PhotoURL = &url
	}
}

// CreateAdvertisement handles POST /api/v1/advertisement - creates a new listing
func CreateAdvertisement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()

	// City and type are reference data; reject unknown ids up front.
	var city models.City
	if err := db.First(&city, req.CityID).Error; err != nil {
		respondError(c, http.StatusNotFound, "CITY_NOT_FOUND", "City not found")
		return
	}
	var adType models.AdvertisementType
	if err := db.First(&adType, req.TypeID).Error; err != nil {
		respondError(c, http.StatusNotFound, "TYPE_NOT_FOUND", "Advertisement type not found")
		return
	}

	ad := models.Advertisement{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CityID:      req.CityID,
		TypeID:      req.TypeID,
		OwnerID:     user.ID,
	}

	if err := db.Create(&ad).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create advertisement")
		return
	}

	// Load relations to return complete data
	if err := db.Preload("Owner").Preload("City").Preload("Type").First(&ad, ad.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load advertisement details")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    ad,
	})
}

// GetAdvertisement handles GET /api/v1/advertisement/:id - fetches one listing
func GetAdvertisement(c *gin.Context) {
	id, ok := parseAdvertisementID(c)
	if !ok {
		return
	}

	repo := repositories.NewAdvertisementRepository(config.GetDB())
	ad, err := repo.FindByIDWithRelations(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch advertisement")
		return
	}
	if ad == nil {
		respondError(c, http.StatusNotFound, "ADVERTISEMENT_NOT_FOUND", "Advertisement not found")
		return
	}

	attachPhotoURL(ad)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ad,
	})
}

// ListAdvertisements handles GET /api/v1/advertisement - lists listings with
// optional city/type/price filters, promoted listings first
func ListAdvertisements(c *gin.Context) {
	filter := repositories.AdvertisementFilter{OpenOnly: c.Query("include_closed") != "true"}

	if v := c.Query("city_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cityID := uint(id)
			filter.CityID = &cityID
		}
	}
	if v := c.Query("type_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			typeID := uint(id)
			filter.TypeID = &typeID
		}
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	repo := repositories.NewAdvertisementRepository(config.GetDB())
	ads, err := repo.FindByFilter(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch advertisements")
		return
	}

	for i := range ads {
		attachPhotoURL(&ads[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ads,
	})
}

// UpdateAdvertisement handles PUT /api/v1/advertisement/:id - updates listing fields (owner only)
func UpdateAdvertisement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseAdvertisementID(c)
	if !ok {
		return
	}

	var req UpdateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
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

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}

	if len(updates) > 0 {
		if err := db.Model(&ad).Updates(updates).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update advertisement")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ad,
	})
}

// CloseAdvertisement handles PATCH /api/v1/advertisement/:id/close
func CloseAdvertisement(c *gin.Context) {
	lifecycleTransition(c, func(svc *services.AdvertisementService, id uint, actor *models.User) (*models.Advertisement, error) {
		return svc.Close(id, actor)
	})
}

// PromoteAdvertisement handles PATCH /api/v1/advertisement/:id/promote
func PromoteAdvertisement(c *gin.Context) {
	lifecycleTransition(c, func(svc *services.AdvertisementService, id uint, actor *models.User) (*models.Advertisement, error) {
		return svc.Promote(id, actor)
	})
}

// ReopenAdvertisement handles PATCH /api/v1/advertisement/:id/reopen
func ReopenAdvertisement(c *gin.Context) {
	lifecycleTransition(c, func(svc *services.AdvertisementService, id uint, actor *models.User) (*models.Advertisement, error) {
		return svc.Reopen(id, actor)
	})
}

// lifecycleTransition runs one state-machine transition and writes the response
func lifecycleTransition(c *gin.Context, transition func(*services.AdvertisementService, uint, *models.User) (*models.Advertisement, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseAdvertisementID(c)
	if !ok {
		return
	}

	svc := services.NewAdvertisementService(config.GetDB())
	ad, err := transition(svc, id, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ad,
	})
}
