package routes

import (
	"net/http"
	"reflect"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

func listCategories(t *testing.T, router *gin.Engine, serviceType string) []string {
	t.Helper()

	code, resp := doJSON(t, router, http.MethodGet, "/api/v1/services/"+serviceType+"/categories", "", nil)
	if code != http.StatusOK {
		t.Fatalf("list %s categories: expected 200, got %d: %v", serviceType, code, resp)
	}

	raw := resp["categories"].([]interface{})
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		categories = append(categories, c.(string))
	}
	return categories
}

func TestListProvidersByCategory(t *testing.T) {
	router := setupTest(t)
	createProvider(t, "plumber", "Bilal Plumbing", "03111222333", map[string]float64{
		"pipe repair": 800,
		"geyser":      2500,
	})
	createProvider(t, "plumber", "Usman Sons", "03224445566", map[string]float64{
		"drain cleaning": 1200,
	})
	createProvider(t, "electrician", "Ali Electric", "03001234567", map[string]float64{
		"wiring": 1500,
	})

	// No filter: every plumber, no rate
	code, resp := doJSON(t, router, http.MethodGet, "/api/v1/services/plumber/providers", "", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, resp)
	}
	providers := resp["providers"].([]interface{})
	if len(providers) != 2 {
		t.Fatalf("expected 2 plumbers, got %d", len(providers))
	}

	// Category filter keeps only providers offering it, with their rate
	code, resp = doJSON(t, router, http.MethodGet, "/api/v1/services/plumber/providers?category=geyser", "", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, resp)
	}
	providers = resp["providers"].([]interface{})
	if len(providers) != 1 {
		t.Fatalf("expected 1 geyser plumber, got %d", len(providers))
	}
	match := providers[0].(map[string]interface{})
	if match["name"] != "Bilal Plumbing" {
		t.Errorf("name = %v, want Bilal Plumbing", match["name"])
	}
	if match["rate"] != "2,500" {
		t.Errorf("rate = %v, want 2,500", match["rate"])
	}
}

func TestListProvidersUnknownType(t *testing.T) {
	router := setupTest(t)

	if code, _ := doJSON(t, router, http.MethodGet, "/api/v1/services/carpenter/providers", "", nil); code != http.StatusNotFound {
		t.Fatalf("unknown service type: expected 404, got %d", code)
	}
	if code, _ := doJSON(t, router, http.MethodGet, "/api/v1/services/carpenter/categories", "", nil); code != http.StatusNotFound {
		t.Fatalf("unknown service type categories: expected 404, got %d", code)
	}
}

func TestCategoriesAreDerivedFromRoster(t *testing.T) {
	router := setupTest(t)
	createProvider(t, "plumber", "Bilal Plumbing", "03111222333", map[string]float64{
		"pipe repair": 800,
		"geyser":      2500,
	})
	createProvider(t, "plumber", "Usman Sons", "03224445566", map[string]float64{
		"drain cleaning": 1200,
		"pipe repair":    900,
	})

	got := listCategories(t, router, "plumber")
	want := []string{"drain cleaning", "geyser", "pipe repair"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("plumber categories = %v, want the sorted union %v", got, want)
	}

	if electrician := listCategories(t, router, "electrician"); len(electrician) != 0 {
		t.Fatalf("electrician categories = %v, want none", electrician)
	}
}

func TestProviderAdminMaintainsCategoryIndex(t *testing.T) {
	router := setupTest(t)
	admin := registerAdmin(t, router, "Admin", "admin@example.com")

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/admin/providers", admin, gin.H{
		"service_type": "electrician",
		"name":         "Ali Electric",
		"contact":      "03001234567",
		"experience":   8,
		"services":     gin.H{"wiring": 1500, "fan installation": 600},
	})
	if code != http.StatusCreated {
		t.Fatalf("create provider: expected 201, got %d: %v", code, resp)
	}
	providerID := int(resp["data"].(map[string]interface{})["id"].(float64))

	got := listCategories(t, router, "electrician")
	if !reflect.DeepEqual(got, []string{"fan installation", "wiring"}) {
		t.Fatalf("categories after create = %v", got)
	}

	path := "/api/v1/admin/providers/" + strconv.Itoa(providerID)

	// Wholesale price-map replace shows up in the derived list
	code, resp = doJSON(t, router, http.MethodPut, path, admin, gin.H{
		"service_type": "electrician",
		"name":         "Ali Electric",
		"contact":      "03001234567",
		"experience":   8,
		"services":     gin.H{"ups repair": 2000},
	})
	if code != http.StatusOK {
		t.Fatalf("update provider: expected 200, got %d: %v", code, resp)
	}
	got = listCategories(t, router, "electrician")
	if !reflect.DeepEqual(got, []string{"ups repair"}) {
		t.Fatalf("categories after update = %v, want just ups repair", got)
	}

	if code, _ = doJSON(t, router, http.MethodDelete, path, admin, nil); code != http.StatusOK {
		t.Fatalf("delete provider: expected 200, got %d", code)
	}
	if got = listCategories(t, router, "electrician"); len(got) != 0 {
		t.Fatalf("categories after delete = %v, want none", got)
	}
}

func TestProviderAdminRejectsUnknownServiceType(t *testing.T) {
	router := setupTest(t)
	admin := registerAdmin(t, router, "Admin", "admin@example.com")
	provider := createProvider(t, "plumber", "Bilal Plumbing", "03111222333", map[string]float64{
		"pipe repair": 800,
	})

	payload := gin.H{
		"service_type": "carpenter",
		"name":         "Bilal Plumbing",
		"contact":      "03111222333",
		"services":     gin.H{"pipe repair": 800},
	}

	if code, resp := doJSON(t, router, http.MethodPost, "/api/v1/admin/providers", admin, payload); code != http.StatusBadRequest {
		t.Fatalf("create with unknown type: expected 400, got %d: %v", code, resp)
	}

	path := "/api/v1/admin/providers/" + strconv.Itoa(int(provider.ID))
	code, resp := doJSON(t, router, http.MethodPut, path, admin, payload)
	if code != http.StatusBadRequest {
		t.Fatalf("update with unknown type: expected 400, got %d: %v", code, resp)
	}
	if resp["error"] != "Unknown service type" {
		t.Errorf("error = %v, want Unknown service type", resp["error"])
	}

	// The stored provider is untouched
	if got := listCategories(t, router, "plumber"); !reflect.DeepEqual(got, []string{"pipe repair"}) {
		t.Fatalf("plumber categories = %v, want [pipe repair]", got)
	}
}
