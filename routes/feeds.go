package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"society-service-server/database"
	"society-service-server/middleware"
	"society-service-server/models"
	ws "society-service-server/websocket"
)

var feedHub *ws.Hub

// InitFeedHub wires the live-update hub into the route handlers. Handlers
// tolerate a nil hub so they stay usable without websockets (tests).
func InitFeedHub(hub *ws.Hub) {
	feedHub = hub
}

// RegisterFeedRoutes exposes the websocket endpoint for live snapshots
func RegisterFeedRoutes(router *gin.Engine, hub *ws.Hub) {
	router.GET("/api/v1/ws", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, user.Email)
	})
}

// broadcastSnapshot loads the current full snapshot of a collection and
// pushes it to the topic's subscribers. Called after every successful write;
// each push is a whole-list replace.
func broadcastSnapshot(topic string) {
	if feedHub == nil {
		return
	}

	var data interface{}
	var err error

	switch topic {
	case ws.TopicChatMessages:
		var list []models.ChatMessage
		err = database.DB.Order("id DESC").Find(&list).Error
		data = list
	case ws.TopicEventNotices:
		var list []models.EventNotice
		err = database.DB.Order("id DESC").Find(&list).Error
		data = list
	case ws.TopicComplaints:
		var list []models.Complaint
		err = database.DB.Order("id DESC").Find(&list).Error
		data = list
	case ws.TopicProperties:
		var list []models.Property
		err = database.DB.Order("id DESC").Find(&list).Error
		data = list
	default:
		return
	}

	if err != nil {
		log.Printf("❌ Failed to load %s snapshot: %v", topic, err)
		return
	}

	feedHub.BroadcastSnapshot(topic, data)
}
