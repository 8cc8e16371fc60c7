package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/services"
)

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	AdvertisementID *uint  `json:"advertisement_id"`
	RecipientID     uint   `json:"recipient_id" binding:"required"`
	MessageText     string `json:"message_text" binding:"required"`
}

// MessageFilterRequest represents the request body for paging through a chat
type MessageFilterRequest struct {
	SecondUserID    uint       `json:"second_user_id" binding:"required"`
	AdvertisementID *uint      `json:"advertisement_id"`
	Limit           int        `json:"limit"`
	IsBefore        *bool      `json:"is_before"`
	CursorDateTime  *time.Time `json:"cursor_date_time"`
	CursorMessageID *uint      `json:"cursor_message_id"`
}

// MarkReadRequest represents the request body for marking messages read
type MarkReadRequest struct {
	SecondUserID    uint       `json:"second_user_id" binding:"required"`
	AdvertisementID *uint      `json:"advertisement_id"`
	UpToDateTime    *time.Time `json:"up_to_date_time" binding:"required"`
	UpToMessageID   uint       `json:"up_to_message_id" binding:"required"`
}

// SendMessage handles POST /api/v1/message - sends a direct message
func SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	messageService := services.NewMessageService(config.GetDB())
	message, err := messageService.Send(user.ID, req.RecipientID, req.AdvertisementID, req.MessageText)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListChat handles POST /api/v1/message/chat - returns one page of a
// conversation. The first (cursorless) page additionally carries the
// caller's unread count for this conversation.
func ListChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req MessageFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	// The cursor is a pair; one half on its own is malformed.
	if (req.CursorDateTime == nil) != (req.CursorMessageID == nil) {
		respondError(c, http.StatusBadRequest, "INVALID_CURSOR",
			"cursor_date_time and cursor_message_id must both be present or both be absent")
		return
	}

	isBefore := true
	if req.IsBefore != nil {
		isBefore = *req.IsBefore
	}

	messageService := services.NewMessageService(config.GetDB())
	page, err := messageService.ListChat(user.ID, services.ChatFilter{
		SecondUserID:    req.SecondUserID,
		AdvertisementID: req.AdvertisementID,
		Limit:           req.Limit,
		IsBefore:        isBefore,
		CursorSentAt:    req.CursorDateTime,
		CursorMessageID: req.CursorMessageID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{"messages": page.Messages}
	if page.UnreadCount != nil {
		data["unread_count"] = *page.UnreadCount
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// MarkRead handles PATCH /api/v1/message/mark-read - marks messages from the
// other party as read up to a point in the conversation order
func MarkRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	messageService := services.NewMessageService(config.GetDB())
	err := messageService.MarkReadUpTo(user.ID, req.SecondUserID, req.AdvertisementID, *req.UpToDateTime, req.UpToMessageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
