package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"society-service-server/database"
	"society-service-server/models"
	ws "society-service-server/websocket"
)

// RegisterComplaintRoutes registers the complaint append flow
func RegisterComplaintRoutes(router *gin.RouterGroup) {
	router.GET("", ListComplaints)
	router.POST("", SubmitComplaint)
}

// ListComplaints returns complaints newest-first
func ListComplaints(c *gin.Context) {
	var complaints []models.Complaint
	if err := database.DB.Order("id DESC").Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch complaints",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"complaints": complaints,
	})
}

// SubmitComplaint appends a new complaint record
func SubmitComplaint(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		Complaint string `json:"complaint" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.Complaint = strings.TrimSpace(req.Complaint)
	if req.Complaint == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Empty complaint",
			"message": "Please enter your complaint",
		})
		return
	}

	complaint := models.Complaint{
		Complaint: req.Complaint,
		Author:    user.Email,
	}

	if err := database.DB.Create(&complaint).Error; err != nil {
		log.Printf("❌ Failed to store complaint: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	broadcastSnapshot(ws.TopicComplaints)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Complaint submitted successfully",
		"data":    complaint,
	})
}
