package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"society-service-server/database"
	"society-service-server/models"
	ws "society-service-server/websocket"
)

// RegisterPropertyRoutes registers the resident-facing listing endpoint
func RegisterPropertyRoutes(router *gin.RouterGroup) {
	router.GET("", ListProperties)
}

// RegisterPropertyAdminRoutes registers the admin CRUD for listings
func RegisterPropertyAdminRoutes(router *gin.RouterGroup) {
	router.POST("/properties", CreateProperty)
	router.PUT("/properties/:id", UpdateProperty)
	router.DELETE("/properties/:id", DeleteProperty)
}

// ListProperties returns the full property listing snapshot
func ListProperties(c *gin.Context) {
	var properties []models.Property
	if err := database.DB.Order("id DESC").Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch properties",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"properties": properties,
	})
}

type propertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Contact     string  `json:"contact"`
	Description string  `json:"description"`
}

// CreateProperty adds a listing and pushes the fresh snapshot to subscribers
func CreateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "message": err.Error()})
		return
	}

	property := models.Property{
		Title:       req.Title,
		Type:        req.Type,
		Price:       req.Price,
		Location:    req.Location,
		Contact:     req.Contact,
		Description: req.Description,
	}

	if err := database.DB.Create(&property).Error; err != nil {
		log.Printf("❌ Failed to create property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	broadcastSnapshot(ws.TopicProperties)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Property created successfully",
		"data":    property,
	})
}

// UpdateProperty replaces a listing's details
func UpdateProperty(c *gin.Context) {
	propertyID := c.Param("id")

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "message": err.Error()})
		return
	}

	var property models.Property
	if err := database.DB.First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	property.Title = req.Title
	property.Type = req.Type
	property.Price = req.Price
	property.Location = req.Location
	property.Contact = req.Contact
	property.Description = req.Description

	if err := database.DB.Save(&property).Error; err != nil {
		log.Printf("❌ Failed to update property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	broadcastSnapshot(ws.TopicProperties)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property updated successfully",
		"data":    property,
	})
}

// DeleteProperty removes a listing
func DeleteProperty(c *gin.Context) {
	propertyID := c.Param("id")

	var property models.Property
	if err := database.DB.First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if err := database.DB.Delete(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	broadcastSnapshot(ws.TopicProperties)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property deleted successfully",
	})
}
