package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRequest is a free-form request for a home service, filed when a
// resident needs something outside the provider roster
type ServiceRequest struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	RecordID    string    `json:"id" gorm:"size:36;uniqueIndex;not null;column:record_id"`
	ServiceType string    `json:"serviceType" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Requester   string    `json:"requester" gorm:"size:255"` // resident email
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the ServiceRequest model
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// BeforeCreate assigns the opaque record id exposed to clients
func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RecordID == "" {
		r.RecordID = uuid.NewString()
	}
	return nil
}
