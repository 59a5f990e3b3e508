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

// RegisterNoticeRoutes registers the resident-facing notice feed
func RegisterNoticeRoutes(router *gin.RouterGroup) {
	router.GET("", ListNotices)
}

// RegisterNoticeAdminRoutes registers notice posting and maintenance.
// Posting is admin-only at the write boundary, not just hidden in a client.
func RegisterNoticeAdminRoutes(router *gin.RouterGroup) {
	router.POST("/notices", CreateNotice)
	router.PUT("/notices/:id", UpdateNotice)
	router.DELETE("/notices/:id", DeleteNotice)
}

// ListNotices returns event notices newest-first
func ListNotices(c *gin.Context) {
	var notices []models.EventNotice
	if err := database.DB.Order("id DESC").Find(&notices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch notices",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"notices": notices,
	})
}

type noticeRequest struct {
	EventTitle       string `json:"eventTitle" binding:"required"`
	EventDescription string `json:"eventDescription" binding:"required"`
}

// CreateNotice posts a new community notice
func CreateNotice(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.EventTitle = strings.TrimSpace(req.EventTitle)
	req.EventDescription = strings.TrimSpace(req.EventDescription)
	if req.EventTitle == "" || req.EventDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing Info",
			"message": "Please enter a title and description",
		})
		return
	}

	notice := models.EventNotice{
		EventTitle:       req.EventTitle,
		EventDescription: req.EventDescription,
		AuthorID:         user.ID,
	}

	if err := database.DB.Create(&notice).Error; err != nil {
		log.Printf("❌ Failed to store notice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post notice"})
		return
	}

	broadcastSnapshot(ws.TopicEventNotices)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Notice posted successfully",
		"data":    notice,
	})
}

// UpdateNotice overwrites a notice's content. Only the original author may
// edit; the check runs here, at the write boundary.
func UpdateNotice(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	recordID := c.Param("id")

	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	var notice models.EventNotice
	if err := database.DB.Where("record_id = ?", recordID).First(&notice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	if notice.AuthorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not the author",
			"message": "Only the author can edit this notice",
		})
		return
	}

	notice.EventTitle = strings.TrimSpace(req.EventTitle)
	notice.EventDescription = strings.TrimSpace(req.EventDescription)

	if err := database.DB.Save(&notice).Error; err != nil {
		log.Printf("❌ Failed to update notice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notice"})
		return
	}

	broadcastSnapshot(ws.TopicEventNotices)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notice updated successfully",
		"data":    notice,
	})
}

// DeleteNotice removes a notice by its record id (author only)
func DeleteNotice(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	recordID := c.Param("id")

	var notice models.EventNotice
	if err := database.DB.Where("record_id = ?", recordID).First(&notice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	if notice.AuthorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not the author",
			"message": "Only the author can delete this notice",
		})
		return
	}

	if err := database.DB.Delete(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notice"})
		return
	}

	broadcastSnapshot(ws.TopicEventNotices)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notice deleted successfully",
	})
}
