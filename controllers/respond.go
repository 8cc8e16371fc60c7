package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/middleware"
	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/services"
	"github.com/temirlan-b/baraholka-api/utils"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps service-layer errors onto HTTP status codes:
// not-found -> 404, business conflicts -> 409, ownership/role -> 403,
// malformed input -> 400, anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	var forbidden *services.ForbiddenError
	var validation *services.ValidationError
	var upload *utils.FileUploadError

	switch {
	case errors.As(err, &notFound):
		respondError(c, http.StatusNotFound, notFound.Code, notFound.Message)
	case errors.As(err, &conflict):
		respondError(c, http.StatusConflict, conflict.Code, conflict.Message)
	case errors.As(err, &forbidden):
		respondError(c, http.StatusForbidden, forbidden.Code, forbidden.Message)
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Code, validation.Message)
	case errors.As(err, &upload):
		respondError(c, http.StatusBadRequest, upload.Code, upload.Message)
	default:
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "An unexpected error occurred")
	}
}

// currentUser resolves the authenticated user from the token context and the
// database. Writes the error response and returns false on failure.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found")
		return nil, false
	}

	return &user, true
}
