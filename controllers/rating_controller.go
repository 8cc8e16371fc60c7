package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/services"
)

// RateUserRequest represents the request body for rating a user
type RateUserRequest struct {
	RatedID uint `json:"rated_id" binding:"required"`
	Points  int  `json:"points" binding:"required,min=1,max=5"`
}

// RateUser handles POST /api/v1/rating - rates another user
func RateUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req RateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	ratingService := services.NewRatingService(config.GetDB())
	rating, err := ratingService.Rate(user.ID, req.RatedID, req.Points)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    rating,
	})
}

// UnrateUser handles DELETE /api/v1/rating/user/:id - removes the caller's rating
func UnrateUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "User ID must be a number")
		return
	}

	ratingService := services.NewRatingService(config.GetDB())
	if err := ratingService.Unrate(user.ID, uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUserRating handles GET /api/v1/rating/user/:id - returns the aggregated
// rating summary for a user (as of the last periodic refresh)
func GetUserRating(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "User ID must be a number")
		return
	}

	ratingService := services.NewRatingService(config.GetDB())
	summary, err := ratingService.GetSummary(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}
