package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/services"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupTestDB(t)
	config.SetConfig(&config.Config{JWTSecret: "test-secret", TokenTTLHours: 1})

	router := setupTestRouter()
	router.POST("/api/v1/auth/register", Register)
	router.POST("/api/v1/auth/login", Login)
	return router
}

func TestRegisterEndpoint(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("creates account without exposing the password hash", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/register", gin.H{
			"name":     "Aset",
			"phone":    "+77011234567",
			"username": "aset",
			"password": "long-enough-password",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "aset", data["username"])
		assert.Equal(t, "user", data["role"])
		_, hasHash := data["password_hash"]
		assert.False(t, hasHash, "password hash must never appear in responses")

		// The stored hash is bcrypt, not the plaintext
		var stored models.User
		assert.NoError(t, config.GetDB().Where("username = ?", "aset").First(&stored).Error)
		assert.NotEqual(t, "long-enough-password", stored.PasswordHash)
		assert.True(t, services.CheckPassword(stored.PasswordHash, "long-enough-password"))
	})

	t.Run("duplicate username returns 409", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/register", gin.H{
			"name":     "Impostor",
			"phone":    "+77017654321",
			"username": "aset",
			"password": "another-password",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "USERNAME_EXISTS", errorCode(t, w))
	})

	t.Run("short password fails validation", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/register", gin.H{
			"name":     "Short",
			"phone":    "+77010000001",
			"username": "short",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})
}

func TestLoginEndpoint(t *testing.T) {
	router := setupAuthRouter(t)

	w := doJSON(router, "POST", "/api/v1/auth/register", gin.H{
		"name":     "Aset",
		"phone":    "+77011234567",
		"username": "aset",
		"password": "long-enough-password",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials return a verifiable token", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/login", gin.H{
			"username": "aset",
			"password": "long-enough-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		token, _ := data["token"].(string)
		assert.NotEmpty(t, token)

		claims, err := services.NewTokenService(config.GetConfig()).Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/login", gin.H{
			"username": "aset",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
	})

	t.Run("unknown username returns the same 401", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/login", gin.H{
			"username": "nobody",
			"password": "whatever-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
	})
}

func TestUserProfileEndpoints(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "aset", "user")

	router := setupTestRouter()
	auth := mockAuthMiddleware(user.ID, user.Role)
	router.GET("/api/v1/users/me", auth, GetMyProfile)
	router.PUT("/api/v1/users/me", auth, UpdateMyProfile)
	router.GET("/api/v1/users/:id", auth, GetUser)

	t.Run("me returns the current profile", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/users/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "aset", data["username"])
	})

	t.Run("partial profile update", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/v1/users/me", gin.H{"phone": "+77019999999"})
		assert.Equal(t, http.StatusOK, w.Code)

		var reloaded models.User
		assert.NoError(t, db.First(&reloaded, user.ID).Error)
		assert.Equal(t, "+77019999999", reloaded.Phone)
		assert.Equal(t, "aset", reloaded.Name, "unspecified fields are untouched")
	})

	t.Run("unknown user id returns 404", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/users/4242", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
	})
}
