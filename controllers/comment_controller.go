package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/services"
)

// CreateCommentRequest represents the request body for adding a comment
type CreateCommentRequest struct {
	AdvertisementID uint   `json:"advertisement_id" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
	Text            string `json:"text" binding:"required"`
}

// parseCommentID extracts the :id path parameter
func parseCommentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Comment ID must be a number")
		return 0, false
	}
	return uint(id), true
}

// CreateComment handles POST /api/v1/comment - adds a comment or reply
func CreateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	commentService := services.NewCommentService(config.GetDB())
	comment, err := commentService.Add(user.ID, req.AdvertisementID, req.ParentCommentID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
	})
}

// GetComment handles GET /api/v1/comment/:id - fetches one comment
func GetComment(c *gin.Context) {
	id, ok := parseCommentID(c)
	if !ok {
		return
	}

	commentService := services.NewCommentService(config.GetDB())
	comment, err := commentService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comment,
	})
}

// ListAdvertisementComments handles GET /api/v1/comment/advertisement/:id -
// lists all comments under an advertisement grouped by thread
func ListAdvertisementComments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Advertisement ID must be a number")
		return
	}

	commentService := services.NewCommentService(config.GetDB())
	comments, err := commentService.ListByAdvertisement(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
	})
}

// DeleteComment handles DELETE /api/v1/comment/:id - soft-deletes a comment
func DeleteComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseCommentID(c)
	if !ok {
		return
	}

	commentService := services.NewCommentService(config.GetDB())
	if err := commentService.Delete(id, user); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
