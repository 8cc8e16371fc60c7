package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHealthEndpointIntegration tests the /api/v1/health endpoint with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	router := setupTestApp(t)

	// Create a test request
	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	// Serve the request
	router.ServeHTTP(w, req)

	// Assert status code
	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	// Parse and verify response
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Baraholka API is running", response["message"])
}

// TestHealthEndpointMethod tests that only GET method is allowed
func TestHealthEndpointMethod(t *testing.T) {
	router := setupTestApp(t)

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		req, _ := http.NewRequest(method, "/api/v1/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s should not be allowed", method)
	}
}

// TestAPIV1Prefix tests that endpoints require the /api/v1 prefix
func TestAPIV1Prefix(t *testing.T) {
	router := setupTestApp(t)

	// Test without /api/v1 prefix (should fail)
	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code, "Endpoint should require /api/v1 prefix")

	// Test with correct prefix (should succeed)
	req, _ = http.NewRequest("GET", "/api/v1/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "Endpoint should work with /api/v1 prefix")
}

// TestProtectedRoutesRequireToken verifies the authenticated group rejects
// unauthenticated requests before reaching any handler
func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupTestApp(t)

	protected := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/users/me"},
		{"POST", "/api/v1/advertisement"},
		{"POST", "/api/v1/message"},
		{"POST", "/api/v1/message/chat"},
		{"PATCH", "/api/v1/message/mark-read"},
		{"POST", "/api/v1/comment"},
		{"POST", "/api/v1/rating"},
		{"POST", "/api/v1/sale"},
	}

	for _, route := range protected {
		req, _ := http.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s must require a token", route.method, route.path)
		assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
	}
}

// TestPublicRoutesNeedNoToken verifies read-only routes stay public
func TestPublicRoutesNeedNoToken(t *testing.T) {
	router := setupTestApp(t)

	public := []string{
		"/api/v1/cities",
		"/api/v1/advertisement-types",
		"/api/v1/advertisement",
	}

	for _, path := range public {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "GET %s must not require a token", path)
	}
}
