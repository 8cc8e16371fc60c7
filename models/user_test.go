package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTableName(t *testing.T) {
	user := User{}
	assert.Equal(t, "users", user.TableName(), "Table name should be 'users'")
}

func TestUserStructFields(t *testing.T) {
	user := User{
		Username: "aset",
		Role:     "user",
	}

	assert.Equal(t, "aset", user.Username, "Username should be set correctly")
	assert.Equal(t, "user", user.Role, "Role should be set correctly")
}

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		isAdmin bool
	}{
		{"user role", "user", false},
		{"admin role", "admin", true},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{Username: "aset", Role: tt.role}
			assert.Equal(t, tt.isAdmin, user.IsAdmin())
		})
	}
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := User{
		Username:     "aset",
		PasswordHash: "$2a$10$secret",
	}

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "secret", "Password hash must not be serialized")
	assert.Contains(t, string(data), `"username":"aset"`)
}
