package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is a single message in the community forum
type ChatMessage struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	RecordID  string    `json:"id" gorm:"size:36;uniqueIndex;not null;column:record_id"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Sender    string    `json:"sender" gorm:"size:255;not null"` // sender email
	SenderID  uint      `json:"sender_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// BeforeCreate assigns the opaque record id exposed to clients
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.RecordID == "" {
		m.RecordID = uuid.NewString()
	}
	return nil
}
