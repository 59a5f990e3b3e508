package jobs

import (
	"log"
	"time"

	"society-service-server/services"
)

// CleanupJob prunes expired refresh tokens and used/expired password-reset
// tokens in the background
type CleanupJob struct {
	stopChan chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Token cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Token cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	jwtService := services.NewJWTService()

	for {
		select {
		case <-ticker.C:
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		case <-j.stopChan:
			return
		}
	}
}
