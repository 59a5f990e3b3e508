package models

import (
	"fmt"
	"strings"
	"time"
)

// Booking reserves a single (date, time) slot for a service appointment.
// The unique index on (date, slot_time) is the consistency guarantee:
// two concurrent reservations for the same slot can never both commit.
// Bookings are never updated or deleted by the reservation flow.
type Booking struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Date            string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_booking_slot"`      // YYYY-MM-DD
	SlotTime        string    `json:"time" gorm:"size:8;not null;uniqueIndex:idx_booking_slot;column:slot_time"` // HH-MM-SS
	ProviderID      uint      `json:"provider_id" gorm:"not null;index"`
	ProviderName    string    `json:"provider" gorm:"size:255;not null;column:provider_name"`
	ServiceType     string    `json:"service" gorm:"size:20;not null;column:service_type"`
	CustomerName    string    `json:"customer" gorm:"size:255;not null;column:customer_name"`
	CustomerContact string    `json:"customer_contact" gorm:"size:20;not null"`
	CustomerAddress string    `json:"address" gorm:"size:500;not null;column:customer_address"`
	CreatedAt       time.Time `json:"timestamp" gorm:"autoCreateTime"`

	Provider Provider `json:"-" gorm:"foreignKey:ProviderID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// NormalizeSlotTime replaces colon separators with dashes so the time is
// safe as a key segment (14:30:00 -> 14-30-00)
func NormalizeSlotTime(t string) string {
	return strings.ReplaceAll(t, ":", "-")
}

// SlotKey returns the composite key identifying this booking's slot,
// e.g. bookings/2025-06-01/14-30-00
func (b *Booking) SlotKey() string {
	return fmt.Sprintf("bookings/%s/%s", b.Date, b.SlotTime)
}
