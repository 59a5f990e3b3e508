package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"society-service-server/database"
	"society-service-server/models"
)

// RegisterServiceRequestRoutes registers the free-form service request flow
func RegisterServiceRequestRoutes(router *gin.RouterGroup) {
	router.GET("", ListServiceRequests)
	router.POST("", SubmitServiceRequest)
}

// ListServiceRequests returns requests newest-first
func ListServiceRequests(c *gin.Context) {
	var requests []models.ServiceRequest
	if err := database.DB.Order("id DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch service requests",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}

// SubmitServiceRequest appends a new request record
func SubmitServiceRequest(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		ServiceType string `json:"serviceType" binding:"required"`
		Description string `json:"description" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.Description = strings.TrimSpace(req.Description)
	if req.ServiceType == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing Info",
			"message": "Please enter a service type and description",
		})
		return
	}

	request := models.ServiceRequest{
		ServiceType: req.ServiceType,
		Description: req.Description,
		Requester:   user.Email,
	}

	if err := database.DB.Create(&request).Error; err != nil {
		log.Printf("❌ Failed to store service request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Service request submitted successfully",
		"data":    request,
	})
}
