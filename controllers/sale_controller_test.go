package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/temirlan-b/baraholka-api/models"
)

func TestSaleEndpoints(t *testing.T) {
	db := setupTestDB(t)
	seller := createUser(t, db, "seller", "user")
	buyer := createUser(t, db, "buyer", "user")
	ad := createAdvertisement(t, db, seller, 2)

	newRouter := func(as *models.User) *gin.Engine {
		router := setupTestRouter()
		auth := mockAuthMiddleware(as.ID, as.Role)
		router.POST("/api/v1/sale", auth, RecordSale)
		router.GET("/api/v1/sale/my", auth, ListMySales)
		return router
	}

	t.Run("owner records a sale", func(t *testing.T) {
		w := doJSON(newRouter(seller), "POST", "/api/v1/sale", gin.H{
			"advertisement_id": ad.ID,
			"buyer_id":         buyer.ID,
			"quantity":         1,
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["quantity"])
		assert.Equal(t, ad.Price, data["price_per_unit"])

		var reloaded models.Advertisement
		assert.NoError(t, db.First(&reloaded, ad.ID).Error)
		assert.Equal(t, 1, reloaded.Quantity)
	})

	t.Run("non-owner cannot record a sale", func(t *testing.T) {
		w := doJSON(newRouter(buyer), "POST", "/api/v1/sale", gin.H{
			"advertisement_id": ad.ID,
			"buyer_id":         seller.ID,
			"quantity":         1,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "NOT_OWNER", errorCode(t, w))
	})

	t.Run("overselling returns 409", func(t *testing.T) {
		w := doJSON(newRouter(seller), "POST", "/api/v1/sale", gin.H{
			"advertisement_id": ad.ID,
			"buyer_id":         buyer.ID,
			"quantity":         5,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INSUFFICIENT_QUANTITY", errorCode(t, w))
	})

	t.Run("both parties see the sale", func(t *testing.T) {
		for _, party := range []*models.User{seller, buyer} {
			w := doJSON(newRouter(party), "GET", "/api/v1/sale/my", nil)
			assert.Equal(t, http.StatusOK, w.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			sales := resp["data"].([]interface{})
			assert.Len(t, sales, 1)
		}
	})
}

func TestReferenceEndpoints(t *testing.T) {
	db := setupTestDB(t)
	for _, name := range []string{"Shymkent", "Almaty"} {
		assert.NoError(t, db.Create(&models.City{Name: name}).Error)
	}
	assert.NoError(t, db.Create(&models.AdvertisementType{Name: "Vehicles"}).Error)

	router := setupTestRouter()
	router.GET("/api/v1/cities", ListCities)
	router.GET("/api/v1/advertisement-types", ListAdvertisementTypes)

	w := doJSON(router, "GET", "/api/v1/cities", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	cities := resp["data"].([]interface{})
	assert.Len(t, cities, 2)
	assert.Equal(t, "Almaty", cities[0].(map[string]interface{})["name"], "cities come back sorted by name")

	w = doJSON(router, "GET", "/api/v1/advertisement-types", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 1)
}
