package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/shramba/internal/feeds"
	"github.com/erazemk/shramba/internal/store"
)

// FeedsHandler proxies the read-only public feeds: FDA recalls, barcode
// product lookups, and recipe suggestions keyed off the caller's inventory.
type FeedsHandler struct {
	DB       *sql.DB
	Recalls  *feeds.RecallClient
	Recipes  *feeds.RecipeClient
	Products *feeds.ProductClient
}

// defaultRecallLimit matches the app's recall screen page size.
const defaultRecallLimit = 50

// maxSuggestionIngredients caps how many distinct inventory names are sent
// to the recipe feed per request.
const maxSuggestionIngredients = 10

// ListRecalls handles GET /api/recalls?limit=50.
func (h *FeedsHandler) ListRecalls(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecallLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			jsonError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	recalls, err := h.Recalls.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("recall feed failed", "error", err)
		jsonError(w, http.StatusBadGateway, "recall feed unavailable")
		return
	}
	if recalls == nil {
		recalls = []feeds.Recall{}
	}

	jsonResponse(w, http.StatusOK, recalls)
}

// GetProduct handles GET /api/products/{barcode}: name/brand/category hints
// for prefilling item creation after a barcode scan.
func (h *FeedsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")
	if barcode == "" {
		jsonError(w, http.StatusBadRequest, "barcode required")
		return
	}

	product, err := h.Products.ByBarcode(r.Context(), barcode)
	if err != nil {
		slog.Error("product feed failed", "error", err, "barcode", barcode)
		jsonError(w, http.StatusBadGateway, "product feed unavailable")
		return
	}
	if product == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	jsonResponse(w, http.StatusOK, product)
}

// Suggestions handles GET /api/recipes/suggestions: meals matching any
// distinct item name in the caller's inventory, deduplicated by meal id.
func (h *FeedsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	// One feed query per distinct item name.
	seen := make(map[string]bool)
	var ingredients []string
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		ingredients = append(ingredients, name)
		if len(ingredients) == maxSuggestionIngredients {
			break
		}
	}

	suggested := []feeds.Meal{}
	seenMeals := make(map[string]bool)
	for _, ingredient := range ingredients {
		meals, err := h.Recipes.ByIngredient(r.Context(), ingredient)
		if err != nil {
			slog.Error("recipe feed failed", "error", err, "ingredient", ingredient)
			jsonError(w, http.StatusBadGateway, "recipe feed unavailable")
			return
		}
		for _, meal := range meals {
			if !seenMeals[meal.ID] {
				seenMeals[meal.ID] = true
				suggested = append(suggested, meal)
			}
		}
	}

	jsonResponse(w, http.StatusOK, suggested)
}

// GetRecipe handles GET /api/recipes/{id}.
func (h *FeedsHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	meal, err := h.Recipes.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("recipe feed failed", "error", err)
		jsonError(w, http.StatusBadGateway, "recipe feed unavailable")
		return
	}
	if meal == nil {
		jsonError(w, http.StatusNotFound, "recipe not found")
		return
	}

	jsonResponse(w, http.StatusOK, meal)
}
