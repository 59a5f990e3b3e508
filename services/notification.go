package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"society-service-server/config"
	"society-service-server/models"
)

// NormalizePhone formats a contact number for use in a messaging deep link.
// Numbers already carrying an international prefix pass through unchanged;
// anything else gets the configured default country code.
func NormalizePhone(contact, countryCode string) string {
	contact = strings.TrimSpace(contact)
	if strings.HasPrefix(contact, "+") {
		return contact
	}
	return "+" + countryCode + contact
}

// BookingMessage builds the provider-facing notification text for a booking
func BookingMessage(b *models.Booking) string {
	return fmt.Sprintf("Dear %s,\nYou have been booked by %s for %s on %s at %s.\nAddress: %s",
		b.ProviderName, b.CustomerName, b.ServiceType, b.Date,
		strings.ReplaceAll(b.SlotTime, "-", ":"), b.CustomerAddress)
}

// WhatsAppLink returns the deep link that opens a chat with the provider
// pre-filled with the booking notification
func WhatsAppLink(b *models.Booking, providerContact string) string {
	phone := NormalizePhone(providerContact, config.AppConfig.Phone.DefaultCountryCode)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(BookingMessage(b)))
}

// BookingEvent is the payload published to the broker when a slot is reserved
type BookingEvent struct {
	SlotKey         string    `json:"slot_key"`
	Provider        string    `json:"provider"`
	ProviderContact string    `json:"provider_contact"`
	Service         string    `json:"service"`
	Customer        string    `json:"customer"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	CreatedAt       time.Time `json:"created_at"`
}

// EventPublisher publishes booking events for out-of-process consumers
// (e.g. an SMS/WhatsApp relay). A nil publisher is valid and publishes
// nothing; a publish failure never affects the committed booking.
type EventPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewEventPublisher connects to the broker and declares the topic exchange.
// Returns (nil, nil) when no broker is configured.
func NewEventPublisher() (*EventPublisher, error) {
	cfg := config.AppConfig.AMQP
	if cfg.URL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Printf("✅ Booking event publisher connected to %s", cfg.Exchange)
	return &EventPublisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

// PublishBookingCreated emits a booking.created event. Safe on a nil receiver.
func (p *EventPublisher) PublishBookingCreated(ctx context.Context, b *models.Booking, providerContact string) error {
	if p == nil {
		return nil
	}

	event := BookingEvent{
		SlotKey:         b.SlotKey(),
		Provider:        b.ProviderName,
		ProviderContact: NormalizePhone(providerContact, config.AppConfig.Phone.DefaultCountryCode),
		Service:         b.ServiceType,
		Customer:        b.CustomerName,
		Date:            b.Date,
		Time:            b.SlotTime,
		CreatedAt:       b.CreatedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, p.exchange, "booking.created", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close releases the broker connection. Safe on a nil receiver.
func (p *EventPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
