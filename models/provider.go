package models

import (
	"time"
)

type ServiceType string

const (
	ServiceTypePlumber     ServiceType = "plumber"
	ServiceTypeElectrician ServiceType = "electrician"
)

// IsValidServiceType checks whether the given string names a known service type
func IsValidServiceType(s string) bool {
	switch ServiceType(s) {
	case ServiceTypePlumber, ServiceTypeElectrician:
		return true
	default:
		return false
	}
}

// Provider is a plumber or electrician offering priced service categories.
// Providers are sourced and maintained through the admin surface and are
// read-only to residents.
type Provider struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	ServiceType ServiceType `json:"service_type" gorm:"type:varchar(20);not null;index;check:service_type IN ('plumber','electrician')"`
	Name        string      `json:"name" gorm:"size:255;not null"`
	Contact     string      `json:"contact" gorm:"size:20;not null"`
	Experience  int         `json:"experience" gorm:"default:0"` // years
	PhotoURL    string      `json:"photo_url" gorm:"size:500"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`

	Services []ProviderService `json:"services,omitempty" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
}

// ProviderService maps one category name to its price for a provider
type ProviderService struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	ProviderID uint    `json:"provider_id" gorm:"not null;index;uniqueIndex:idx_provider_category"`
	Category   string  `json:"category" gorm:"size:100;not null;uniqueIndex:idx_provider_category"`
	Price      float64 `json:"price" gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the table name for the Provider model
func (Provider) TableName() string {
	return "providers"
}

// TableName specifies the table name for the ProviderService model
func (ProviderService) TableName() string {
	return "provider_services"
}

// PriceFor returns the provider's price for a category, if offered
func (p *Provider) PriceFor(category string) (float64, bool) {
	for _, s := range p.Services {
		if s.Category == category {
			return s.Price, true
		}
	}
	return 0, false
}
