package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testTimeout = 5 * time.Second

func TestRecallClientRecent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/enforcement.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("expected limit=2, got %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "report_date:desc" {
			t.Errorf("expected sort=report_date:desc, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"recall_number": "F-123", "product_description": "Peanut Butter",
			 "reason_for_recall": "Salmonella", "classification": "Class I",
			 "recalling_firm": "Acme Foods", "report_date": "20240110"},
			{"recall_number": "F-124", "product_description": "Spinach",
			 "reason_for_recall": "Listeria", "classification": "Class II",
			 "recalling_firm": "Green Co", "report_date": "20240109"}
		]}`))
	}))
	t.Cleanup(server.Close)

	client := NewRecallClient(server.URL, testTimeout)
	recalls, err := client.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recalls) != 2 {
		t.Fatalf("expected 2 recalls, got %d", len(recalls))
	}
	if recalls[0].RecallNumber != "F-123" || recalls[0].Classification != "Class I" {
		t.Errorf("unexpected recall: %+v", recalls[0])
	}
}

func TestRecallClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewRecallClient(server.URL, testTimeout)
	if _, err := client.Recent(context.Background(), 10); err == nil {
		t.Error("expected error for upstream 500")
	}
}

func TestRecipeClientByIngredient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/filter.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("i"); got != "chicken" {
			t.Errorf("expected i=chicken, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": [
			{"idMeal": "52940", "strMeal": "Brown Stew Chicken", "strMealThumb": "https://example.com/1.jpg"}
		]}`))
	}))
	t.Cleanup(server.Close)

	client := NewRecipeClient(server.URL, testTimeout)
	meals, err := client.ByIngredient(context.Background(), "chicken")
	if err != nil {
		t.Fatalf("ByIngredient: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != "52940" {
		t.Errorf("unexpected meals: %+v", meals)
	}
}

func TestRecipeClientByIngredientNoMatches(t *testing.T) {
	// TheMealDB reports no matches as a JSON null.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": null}`))
	}))
	t.Cleanup(server.Close)

	client := NewRecipeClient(server.URL, testTimeout)
	meals, err := client.ByIngredient(context.Background(), "plutonium")
	if err != nil {
		t.Fatalf("ByIngredient: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("expected no meals, got %d", len(meals))
	}
}

func TestRecipeClientByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookup.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": [
			{"idMeal": "52940", "strMeal": "Brown Stew Chicken",
			 "strCategory": "Chicken", "strArea": "Jamaican",
			 "strInstructions": "Squeeze lime over chicken..."}
		]}`))
	}))
	t.Cleanup(server.Close)

	client := NewRecipeClient(server.URL, testTimeout)
	meal, err := client.ByID(context.Background(), "52940")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if meal == nil || meal.Category != "Chicken" || meal.Area != "Jamaican" {
		t.Errorf("unexpected meal: %+v", meal)
	}
}

func TestRecipeClientByIDUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": null}`))
	}))
	t.Cleanup(server.Close)

	client := NewRecipeClient(server.URL, testTimeout)
	meal, err := client.ByID(context.Background(), "0")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if meal != nil {
		t.Errorf("expected nil for unknown id, got %+v", meal)
	}
}

func TestProductClientByBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/product/3017620422003.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 1, "product": {
			"product_name": "Nutella", "brands": "Ferrero",
			"categories": "Spreads", "quantity": "400 g"
		}}`))
	}))
	t.Cleanup(server.Close)

	client := NewProductClient(server.URL, testTimeout)
	product, err := client.ByBarcode(context.Background(), "3017620422003")
	if err != nil {
		t.Fatalf("ByBarcode: %v", err)
	}
	if product == nil || product.Name != "Nutella" || product.Brand != "Ferrero" {
		t.Errorf("unexpected product: %+v", product)
	}
	if product.Barcode != "3017620422003" {
		t.Errorf("expected barcode echoed back, got %q", product.Barcode)
	}
}

func TestProductClientUnknownBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	t.Cleanup(server.Close)

	client := NewProductClient(server.URL, testTimeout)
	product, err := client.ByBarcode(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("ByBarcode: %v", err)
	}
	if product != nil {
		t.Errorf("expected nil for unknown barcode, got %+v", product)
	}
}
