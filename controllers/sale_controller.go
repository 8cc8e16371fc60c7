package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/services"
)

// RecordSaleRequest represents the request body for recording a sale
type RecordSaleRequest struct {
	AdvertisementID uint `json:"advertisement_id" binding:"required"`
	BuyerID         uint `json:"buyer_id" binding:"required"`
	Quantity        int  `json:"quantity" binding:"required,gt=0"`
}

// RecordSale handles POST /api/v1/sale - records a sale against a listing (owner only)
func RecordSale(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	saleService := services.NewSaleService(config.GetDB())
	sale, err := saleService.Record(user.ID, req.AdvertisementID, req.BuyerID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    sale,
	})
}

// ListMySales handles GET /api/v1/sale/my - lists sales where the caller is
// seller or buyer
func ListMySales(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	saleService := services.NewSaleService(config.GetDB())
	sales, err := saleService.ListForUser(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sales,
	})
}
