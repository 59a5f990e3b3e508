package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"society-service-server/database"
	"society-service-server/models"
	"society-service-server/services"
)

var eventPublisher *services.EventPublisher

// InitEventPublisher wires the booking event publisher into the handlers.
// A nil publisher disables event publishing.
func InitEventPublisher(p *services.EventPublisher) {
	eventPublisher = p
}

// RegisterBookingRoutes registers the slot reservation endpoints
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("", CreateBooking)
}

// CreateBooking reserves a unique (date, time) slot for a service booking
// and returns the provider notification link.
//
// The handler pre-checks the slot and answers 409 when it is taken; the
// unique index on (date, slot_time) is the actual exclusion guarantee, so a
// race lost between the check and the insert surfaces as the same 409 and
// only one of the contenders ever commits.
func CreateBooking(c *gin.Context) {
	var req struct {
		ProviderID      uint   `json:"provider_id" binding:"required"`
		Date            string `json:"date" binding:"required"` // YYYY-MM-DD
		Time            string `json:"time" binding:"required"` // HH:MM or HH:MM:SS
		CustomerName    string `json:"customer_name"`
		CustomerContact string `json:"customer_contact"`
		CustomerAddress string `json:"customer_address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerContact = strings.TrimSpace(req.CustomerContact)
	req.CustomerAddress = strings.TrimSpace(req.CustomerAddress)

	// All validation happens before any store access
	if req.CustomerName == "" || req.CustomerContact == "" || req.CustomerAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing Info",
			"message": "Please enter all fields (Name, Contact, Address).",
		})
		return
	}

	bookingDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "Date must be in YYYY-MM-DD format",
		})
		return
	}

	bookingTime, err := time.Parse("15:04:05", req.Time)
	if err != nil {
		bookingTime, err = time.Parse("15:04", req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid time",
				"message": "Time must be in HH:MM or HH:MM:SS format",
			})
			return
		}
	}

	slotAt := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(),
		bookingTime.Hour(), bookingTime.Minute(), bookingTime.Second(), 0, time.Local)
	if slotAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid time",
			"message": "The selected slot is in the past. Please choose a future time.",
		})
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, req.ProviderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The selected provider no longer exists",
		})
		return
	}

	date := bookingDate.Format("2006-01-02")
	slotTime := models.NormalizeSlotTime(bookingTime.Format("15:04:05"))

	// Existence pre-check gives the friendly conflict answer without
	// waiting for the constraint to fire
	var existing models.Booking
	err = database.DB.Where("date = ? AND slot_time = ?", date, slotTime).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Time Slot Taken",
			"message": "Please choose a different time.",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ Slot check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking Error",
			"message": "Something went wrong. Try again later.",
		})
		return
	}

	booking := models.Booking{
		Date:            date,
		SlotTime:        slotTime,
		ProviderID:      provider.ID,
		ProviderName:    provider.Name,
		ServiceType:     string(provider.ServiceType),
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		CustomerAddress: req.CustomerAddress,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			// Lost the race window between check and insert
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Time Slot Taken",
				"message": "Please choose a different time.",
			})
			return
		}
		log.Printf("❌ Booking insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking Error",
			"message": "Something went wrong. Try again later.",
		})
		return
	}

	log.Printf("✅ Slot %s reserved for %s", booking.SlotKey(), booking.CustomerName)

	response := gin.H{
		"success": true,
		"message": "Your booking has been confirmed.",
		"data": gin.H{
			"booking":      booking,
			"slot_key":     booking.SlotKey(),
			"whatsapp_url": services.WhatsAppLink(&booking, provider.Contact),
		},
	}

	// Post-commit side effect: never rolls the booking back
	if err := eventPublisher.PublishBookingCreated(c.Request.Context(), &booking, provider.Contact); err != nil {
		log.Printf("⚠️ Booking event publish failed for %s: %v", booking.SlotKey(), err)
		response["warning"] = "Booking confirmed, but the provider notification could not be sent."
	}

	c.JSON(http.StatusCreated, response)
}

// ListBookingsByDate returns all reservations for a calendar day (admin)
func ListBookingsByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "Date must be in YYYY-MM-DD format",
		})
		return
	}

	var bookings []models.Booking
	if err := database.DB.Where("date = ?", date).Order("slot_time ASC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch bookings",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}

// isUniqueViolation covers drivers that don't translate constraint errors
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
