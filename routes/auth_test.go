package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"society-service-server/database"
	"society-service-server/models"
)

func countUsers(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := database.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return count
}

func TestRegisterRejectsBadInputBeforeStore(t *testing.T) {
	router := setupTest(t)

	cases := []struct {
		name      string
		payload   gin.H
		wantError string
	}{
		{"no at sign", gin.H{"full_name": "A", "email": "not-an-email", "password": "secret123"}, "Invalid email format"},
		{"no domain dot", gin.H{"full_name": "A", "email": "a@host", "password": "secret123"}, "Invalid email format"},
		{"short password", gin.H{"full_name": "A", "email": "a@example.com", "password": "12345"}, "Weak password"},
		{"blank name", gin.H{"full_name": "   ", "email": "a@example.com", "password": "secret123"}, "Missing name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", tc.payload)
			if code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %v", code, resp)
			}
			if resp["error"] != tc.wantError {
				t.Errorf("error = %v, want %v", resp["error"], tc.wantError)
			}
		})
	}

	if got := countUsers(t); got != 0 {
		t.Fatalf("rejected registrations must not create users; have %d", got)
	}
}

func TestRegisterCreatesSingleProfile(t *testing.T) {
	router := setupTest(t)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"full_name": "Sana Khan",
		"email":     "Sana@Example.com",
		"password":  "secret123",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", code, resp)
	}

	data := resp["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	if user["email"] != "sana@example.com" {
		t.Errorf("email = %v, want lowercased sana@example.com", user["email"])
	}
	if user["role"] != "resident" {
		t.Errorf("role = %v, want resident", user["role"])
	}
	tokens := data["tokens"].(map[string]interface{})
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Fatal("expected a full token pair on registration")
	}

	if got := countUsers(t); got != 1 {
		t.Fatalf("expected exactly one profile row, got %d", got)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := setupTest(t)
	registerUser(t, router, "Sana Khan", "sana@example.com")

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"full_name": "Someone Else",
		"email":     "sana@example.com",
		"password":  "secret123",
	})
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %v", code, resp)
	}
	if resp["error"] != "Email already in use" {
		t.Errorf("error = %v, want Email already in use", resp["error"])
	}
	if got := countUsers(t); got != 1 {
		t.Fatalf("duplicate registration must not add a row; have %d", got)
	}
}

func TestLogin(t *testing.T) {
	router := setupTest(t)
	registerUser(t, router, "Sana Khan", "sana@example.com")

	t.Run("unknown email", func(t *testing.T) {
		code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "nobody@example.com", "password": "secret123",
		})
		if code != http.StatusUnauthorized || resp["error"] != "User not found" {
			t.Fatalf("got %d / %v, want 401 User not found", code, resp["error"])
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "sana@example.com", "password": "wrong-password",
		})
		if code != http.StatusUnauthorized || resp["error"] != "Incorrect password" {
			t.Fatalf("got %d / %v, want 401 Incorrect password", code, resp["error"])
		}
	})

	t.Run("success", func(t *testing.T) {
		code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "sana@example.com", "password": "secret123",
		})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %v", code, resp)
		}
		tokens := resp["data"].(map[string]interface{})["tokens"].(map[string]interface{})
		access := tokens["access_token"].(string)

		// The issued token opens protected endpoints
		code, _ = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", access, nil)
		if code != http.StatusOK {
			t.Fatalf("me with fresh token: expected 200, got %d", code)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	router := setupTest(t)

	_, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"full_name": "Sana Khan", "email": "sana@example.com", "password": "secret123",
	})
	tokens := resp["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	refresh := tokens["refresh_token"].(string)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": refresh,
	})
	if code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %v", code, resp)
	}

	if code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": "0123456789abcdef",
	}); code != http.StatusUnauthorized {
		t.Fatalf("unknown refresh token: expected 401, got %d", code)
	}

	// Signing in again revokes outstanding refresh tokens
	if code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "sana@example.com", "password": "secret123",
	}); code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", code)
	}
	if code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": refresh,
	}); code != http.StatusUnauthorized {
		t.Fatalf("revoked refresh token: expected 401, got %d", code)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	router := setupTest(t)
	token := registerUser(t, router, "Sana Khan", "sana@example.com")

	if code, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, gin.H{}); code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", code)
	}

	var remaining int64
	database.DB.Model(&models.RefreshToken{}).Where("is_revoked = ?", false).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected all refresh tokens revoked, %d still valid", remaining)
	}
}

func TestPasswordReset(t *testing.T) {
	router := setupTest(t)
	registerUser(t, router, "Sana Khan", "sana@example.com")

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/forgot-password", "", gin.H{
		"email": "sana@example.com",
	})
	if code != http.StatusOK {
		t.Fatalf("forgot-password: expected 200, got %d: %v", code, resp)
	}
	resetToken := resp["data"].(map[string]interface{})["reset_token"].(string)

	code, resp = doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password", "", gin.H{
		"token": resetToken, "new_password": "newsecret456",
	})
	if code != http.StatusOK {
		t.Fatalf("reset-password: expected 200, got %d: %v", code, resp)
	}

	if code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "sana@example.com", "password": "secret123",
	}); code != http.StatusUnauthorized {
		t.Fatalf("old password after reset: expected 401, got %d", code)
	}
	if code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "sana@example.com", "password": "newsecret456",
	}); code != http.StatusOK {
		t.Fatalf("new password after reset: expected 200, got %d", code)
	}

	// Single use
	if code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password", "", gin.H{
		"token": resetToken, "new_password": "another789",
	}); code != http.StatusUnauthorized {
		t.Fatalf("reusing reset token: expected 401, got %d", code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupTest(t)

	for _, path := range []string{
		"/api/v1/properties",
		"/api/v1/complaints",
		"/api/v1/notices",
		"/api/v1/chat",
		"/api/v1/service-requests",
	} {
		if code, _ := doJSON(t, router, http.MethodGet, path, "", nil); code != http.StatusUnauthorized {
			t.Errorf("%s without token: expected 401, got %d", path, code)
		}
	}
}
