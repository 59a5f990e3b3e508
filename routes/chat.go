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

// RegisterChatRoutes registers the community forum endpoints
func RegisterChatRoutes(router *gin.RouterGroup) {
	router.GET("", ListChatMessages)
	router.POST("", SendChatMessage)
	router.PUT("/:id", EditChatMessage)
	router.DELETE("/:id", DeleteChatMessage)
}

// ListChatMessages returns forum messages newest-first
func ListChatMessages(c *gin.Context) {
	var messages []models.ChatMessage
	if err := database.DB.Order("id DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch messages",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
	})
}

// SendChatMessage appends a new forum message
func SendChatMessage(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Empty message",
			"message": "Please type a message",
		})
		return
	}

	message := models.ChatMessage{
		Message:  req.Message,
		Sender:   user.Email,
		SenderID: user.ID,
	}

	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("❌ Failed to store chat message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	broadcastSnapshot(ws.TopicChatMessages)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent",
		"data":    message,
	})
}

// EditChatMessage overwrites a message's content. Author-only, checked at
// the write boundary; re-submitting the same text is a no-op overwrite.
func EditChatMessage(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	recordID := c.Param("id")

	var req struct {
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Empty message",
			"message": "Please type a message",
		})
		return
	}

	var message models.ChatMessage
	if err := database.DB.Where("record_id = ?", recordID).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.SenderID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not the author",
			"message": "Only the sender can edit this message",
		})
		return
	}

	message.Message = req.Message
	if err := database.DB.Save(&message).Error; err != nil {
		log.Printf("❌ Failed to update chat message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	broadcastSnapshot(ws.TopicChatMessages)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message updated",
		"data":    message,
	})
}

// DeleteChatMessage removes a message by record id (author only)
func DeleteChatMessage(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	recordID := c.Param("id")

	var message models.ChatMessage
	if err := database.DB.Where("record_id = ?", recordID).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.SenderID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not the author",
			"message": "Only the sender can delete this message",
		})
		return
	}

	if err := database.DB.Delete(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	broadcastSnapshot(ws.TopicChatMessages)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message deleted",
	})
}
