package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is an append-only free-text record filed by a resident
type Complaint struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	RecordID  string    `json:"id" gorm:"size:36;uniqueIndex;not null;column:record_id"`
	Complaint string    `json:"complaint" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"size:255"` // resident email, optional
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}

// BeforeCreate assigns the opaque record id exposed to clients
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.RecordID == "" {
		c.RecordID = uuid.NewString()
	}
	return nil
}
