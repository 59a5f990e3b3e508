package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"society-service-server/config"
	"society-service-server/database"
	"society-service-server/middleware"
	"society-service-server/models"
	"society-service-server/services"
)

// setupTest wires an isolated in-memory database and a router carrying the
// same route tree as main. Each test gets its own database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Load()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db

	categoryIndex, err := services.NewCategoryIndex(db)
	if err != nil {
		t.Fatalf("create category index: %v", err)
	}
	InitCategoryIndex(categoryIndex)
	InitFeedHub(nil)
	InitEventPublisher(nil)

	router := gin.New()
	api := router.Group("/api/v1")

	authRoutes := api.Group("/auth")
	RegisterAuthRoutes(authRoutes)

	serviceRoutes := api.Group("/services")
	RegisterServiceRoutes(serviceRoutes)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		RegisterBookingRoutes(protected.Group("/bookings"))
		RegisterPropertyRoutes(protected.Group("/properties"))
		RegisterComplaintRoutes(protected.Group("/complaints"))
		RegisterNoticeRoutes(protected.Group("/notices"))
		RegisterChatRoutes(protected.Group("/chat"))
		RegisterServiceRequestRoutes(protected.Group("/service-requests"))
	}

	adminRoutes := api.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		RegisterProviderAdminRoutes(adminRoutes)
		RegisterPropertyAdminRoutes(adminRoutes)
		RegisterNoticeAdminRoutes(adminRoutes)
		adminRoutes.GET("/bookings/:date", ListBookingsByDate)
	}

	return router
}

// doJSON performs a JSON request and decodes the response body
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}

	return w.Code, decoded
}

// registerUser creates an account through the register endpoint and returns
// its access token
func registerUser(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"full_name": name,
		"email":     email,
		"password":  "secret123",
	})
	if code != http.StatusCreated {
		t.Fatalf("register %s: got status %d, resp %v", email, code, resp)
	}

	data := resp["data"].(map[string]interface{})
	tokens := data["tokens"].(map[string]interface{})
	return tokens["access_token"].(string)
}

// registerAdmin creates an account and promotes it to admin
func registerAdmin(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	token := registerUser(t, router, name, email)
	if err := database.DB.Model(&models.User{}).Where("email = ?", email).
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote %s to admin: %v", email, err)
	}
	return token
}

// createProvider inserts a provider with a price map directly
func createProvider(t *testing.T, serviceType, name, contact string, prices map[string]float64) models.Provider {
	t.Helper()

	provider := models.Provider{
		ServiceType: models.ServiceType(serviceType),
		Name:        name,
		Contact:     contact,
		Experience:  5,
	}
	for category, price := range prices {
		provider.Services = append(provider.Services, models.ProviderService{
			Category: category,
			Price:    price,
		})
	}

	if err := database.DB.Create(&provider).Error; err != nil {
		t.Fatalf("create provider %s: %v", name, err)
	}
	return provider
}
