package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// SummaryHandler serves the aggregate numbers the app's home screen shows.
type SummaryHandler struct {
	DB *sql.DB
}

// recentItemLimit caps the "recently added" list on the home screen.
const recentItemLimit = 5

type summaryResponse struct {
	ItemCount     int          `json:"item_count"`
	CategoryCount int          `json:"category_count"`
	Categories    []string     `json:"categories"`
	ExpiringSoon  []model.Item `json:"expiring_soon"`
	RecentItems   []model.Item `json:"recent_items"`
}

// Get handles GET /api/summary.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)

	expiring, err := model.ExpiringWithin(items, model.Today(), model.DefaultExpiringHorizonDays)
	if err != nil {
		slog.Error("malformed expiration date in store", "error", err)
		jsonError(w, http.StatusInternalServerError, "malformed item data")
		return
	}
	if expiring == nil {
		expiring = []model.Item{}
	}

	// Most recently created first.
	recent := make([]model.Item, len(items))
	copy(recent, items)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentItemLimit {
		recent = recent[:recentItemLimit]
	}

	jsonResponse(w, http.StatusOK, summaryResponse{
		ItemCount:     len(items),
		CategoryCount: len(categories),
		Categories:    categories,
		ExpiringSoon:  expiring,
		RecentItems:   recent,
	})
}
