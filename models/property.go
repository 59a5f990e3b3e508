package models

import (
	"time"
)

// Property is a society property listing shown to residents
type Property struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Type        string    `json:"type" gorm:"size:50"` // house, flat, plot, shop
	Price       float64   `json:"price" gorm:"type:decimal(14,2)"`
	Location    string    `json:"location" gorm:"size:255"`
	Contact     string    `json:"contact" gorm:"size:20"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}
