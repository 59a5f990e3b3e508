package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"society-service-server/database"
	"society-service-server/models"
	"society-service-server/services"
	"society-service-server/utils"
)

var categoryIndex *services.CategoryIndex

// InitCategoryIndex wires the derived category index into the handlers
func InitCategoryIndex(ci *services.CategoryIndex) {
	categoryIndex = ci
}

// ProviderView is the roster entry shown to residents
type ProviderView struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	Contact    string             `json:"contact"`
	Experience int                `json:"experience"`
	PhotoURL   string             `json:"photo_url"`
	Services   map[string]float64 `json:"services"`
	Rate       string             `json:"rate,omitempty"` // formatted price for the requested category
}

// RegisterServiceRoutes registers the provider roster and category endpoints
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("/:type/providers", ListProviders)
	router.GET("/:type/categories", ListCategories)
}

// ListProviders returns the providers of a service type, optionally only
// those offering a given category (with their rate for it)
func ListProviders(c *gin.Context) {
	serviceType := c.Param("type")
	if !models.IsValidServiceType(serviceType) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Unknown service type",
			"message": "Service type must be plumber or electrician",
		})
		return
	}

	category := strings.TrimSpace(c.Query("category"))

	var providers []models.Provider
	if err := database.DB.Preload("Services").
		Where("service_type = ?", serviceType).Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch providers",
			"message": err.Error(),
		})
		return
	}

	views := make([]ProviderView, 0, len(providers))
	for i := range providers {
		p := &providers[i]

		view := ProviderView{
			ID:         p.ID,
			Name:       p.Name,
			Contact:    p.Contact,
			Experience: p.Experience,
			PhotoURL:   p.PhotoURL,
			Services:   make(map[string]float64, len(p.Services)),
		}
		for _, s := range p.Services {
			view.Services[s.Category] = s.Price
		}

		if category != "" {
			// Only providers whose price map contains the category
			price, offered := p.PriceFor(category)
			if !offered {
				continue
			}
			view.Rate = utils.FormatPrice(price)
		}

		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"providers": views,
	})
}

// ListCategories returns the derived category list for a service type
func ListCategories(c *gin.Context) {
	serviceType := c.Param("type")
	if !models.IsValidServiceType(serviceType) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Unknown service type",
			"message": "Service type must be plumber or electrician",
		})
		return
	}

	categories, err := categoryIndex.Categories(serviceType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch categories",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// RegisterProviderAdminRoutes registers the provider sourcing surface (admin)
func RegisterProviderAdminRoutes(router *gin.RouterGroup) {
	router.POST("/providers", CreateProvider)
	router.PUT("/providers/:id", UpdateProvider)
	router.DELETE("/providers/:id", DeleteProvider)
}

type providerRequest struct {
	ServiceType string             `json:"service_type" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Contact     string             `json:"contact" binding:"required"`
	Experience  int                `json:"experience"`
	PhotoURL    string             `json:"photo_url"`
	Services    map[string]float64 `json:"services" binding:"required"`
}

// CreateProvider adds a provider to the roster
func CreateProvider(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "message": err.Error()})
		return
	}

	if !models.IsValidServiceType(req.ServiceType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unknown service type",
			"message": "Service type must be plumber or electrician",
		})
		return
	}

	provider := models.Provider{
		ServiceType: models.ServiceType(req.ServiceType),
		Name:        req.Name,
		Contact:     req.Contact,
		Experience:  req.Experience,
		PhotoURL:    req.PhotoURL,
	}
	for category, price := range req.Services {
		provider.Services = append(provider.Services, models.ProviderService{
			Category: category,
			Price:    price,
		})
	}

	if err := database.DB.Create(&provider).Error; err != nil {
		log.Printf("❌ Failed to create provider: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		return
	}

	categoryIndex.Invalidate(req.ServiceType)
	log.Printf("✅ Provider created: %s (ID: %d)", provider.Name, provider.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Provider created successfully",
		"data":    provider,
	})
}

// UpdateProvider replaces a provider's details and price map
func UpdateProvider(c *gin.Context) {
	providerID := c.Param("id")

	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "message": err.Error()})
		return
	}

	if !models.IsValidServiceType(req.ServiceType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unknown service type",
			"message": "Service type must be plumber or electrician",
		})
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, providerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}

	oldType := string(provider.ServiceType)

	provider.ServiceType = models.ServiceType(req.ServiceType)
	provider.Name = req.Name
	provider.Contact = req.Contact
	provider.Experience = req.Experience
	provider.PhotoURL = req.PhotoURL

	if err := database.DB.Save(&provider).Error; err != nil {
		log.Printf("❌ Failed to update provider: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		return
	}

	// Replace the price map wholesale
	if err := database.DB.Where("provider_id = ?", provider.ID).
		Delete(&models.ProviderService{}).Error; err != nil {
		log.Printf("❌ Failed to clear provider services: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		return
	}
	for category, price := range req.Services {
		entry := models.ProviderService{ProviderID: provider.ID, Category: category, Price: price}
		if err := database.DB.Create(&entry).Error; err != nil {
			log.Printf("❌ Failed to store provider service: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
			return
		}
	}

	categoryIndex.Invalidate(oldType)
	categoryIndex.Invalidate(req.ServiceType)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provider updated successfully",
		"data":    provider,
	})
}

// DeleteProvider removes a provider from the roster
func DeleteProvider(c *gin.Context) {
	providerID := c.Param("id")

	var provider models.Provider
	if err := database.DB.First(&provider, providerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}

	if err := database.DB.Where("provider_id = ?", provider.ID).
		Delete(&models.ProviderService{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete provider"})
		return
	}
	if err := database.DB.Delete(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete provider"})
		return
	}

	categoryIndex.Invalidate(string(provider.ServiceType))
	log.Printf("✅ Provider deleted: %d", provider.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provider deleted successfully",
	})
}
