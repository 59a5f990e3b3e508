package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventNotice is a community notice posted by an admin
type EventNotice struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	RecordID         string    `json:"id" gorm:"size:36;uniqueIndex;not null;column:record_id"`
	EventTitle       string    `json:"eventTitle" gorm:"size:255;not null"`
	EventDescription string    `json:"eventDescription" gorm:"type:text;not null"`
	AuthorID         uint      `json:"author_id" gorm:"not null;index"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}

// TableName specifies the table name for the EventNotice model
func (EventNotice) TableName() string {
	return "event_notices"
}

// BeforeCreate assigns the opaque record id exposed to clients
func (n *EventNotice) BeforeCreate(tx *gorm.DB) error {
	if n.RecordID == "" {
		n.RecordID = uuid.NewString()
	}
	return nil
}
