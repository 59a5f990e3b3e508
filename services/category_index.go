package services

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"society-service-server/models"
)

// CategoryIndex is a read-mostly derived index of the category names offered
// per service type. Computed once per provider-collection change instead of
// being rescanned on every services screen load; Invalidate is called by
// every provider write.
type CategoryIndex struct {
	cache *lru.Cache[string, []string]
	mu    sync.Mutex
	db    *gorm.DB
}

// NewCategoryIndex creates the index over the given database
func NewCategoryIndex(db *gorm.DB) (*CategoryIndex, error) {
	cache, err := lru.New[string, []string](16)
	if err != nil {
		return nil, err
	}
	return &CategoryIndex{cache: cache, db: db}, nil
}

// Categories returns the sorted union of category names across all providers
// of the given service type
func (ci *CategoryIndex) Categories(serviceType string) ([]string, error) {
	if cached, ok := ci.cache.Get(serviceType); ok {
		return cached, nil
	}

	ci.mu.Lock()
	defer ci.mu.Unlock()

	// Re-check under the lock; another caller may have rebuilt it
	if cached, ok := ci.cache.Get(serviceType); ok {
		return cached, nil
	}

	var names []string
	err := ci.db.Model(&models.ProviderService{}).
		Distinct("provider_services.category").
		Joins("JOIN providers ON providers.id = provider_services.provider_id").
		Where("providers.service_type = ?", serviceType).
		Pluck("provider_services.category", &names).Error
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	ci.cache.Add(serviceType, names)
	return names, nil
}

// Invalidate drops the cached list for a service type after a provider change
func (ci *CategoryIndex) Invalidate(serviceType string) {
	ci.cache.Remove(serviceType)
}
