package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/imaging"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// ItemsHandler handles inventory item endpoints. Every operation is scoped
// to the authenticated owner.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	Unit           string `json:"unit"`
	Category       string `json:"category"`
	ExpirationDate string `json:"expiration_date"`
}

type updateItemRequest struct {
	Name           *string `json:"name"`
	Quantity       *int    `json:"quantity"`
	Unit           *string `json:"unit"`
	Category       *string `json:"category"`
	ExpirationDate *string `json:"expiration_date"`
}

// expiringItem is an item annotated with its urgency for the expiring-soon
// view.
type expiringItem struct {
	model.Item
	DaysLeft int           `json:"days_left"`
	Urgency  model.Urgency `json:"urgency"`
}

// validateCreate checks a create request before any store interaction.
// Returns an error message suitable for the client, or "".
func validateCreate(req *createItemRequest) string {
	if req.Name == "" {
		return "name required"
	}
	if req.Quantity <= 0 {
		return "quantity must be a positive integer"
	}
	if req.Unit == "" {
		req.Unit = model.DefaultUnit
	}
	if !model.ValidUnit(req.Unit) {
		return "invalid unit"
	}
	if !model.ValidCategory(req.Category) {
		return "invalid category"
	}
	if _, err := model.ParseDate(req.ExpirationDate); err != nil {
		return "expiration_date must be a valid YYYY-MM-DD date"
	}
	return ""
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateCreate(&req); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, claims.UserID,
		req.Name, req.Quantity, req.Unit, req.Category, req.ExpirationDate)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}. Only the supplied fields change.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil && *req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}
	if req.Unit != nil && !model.ValidUnit(*req.Unit) {
		jsonError(w, http.StatusBadRequest, "invalid unit")
		return
	}
	if req.Category != nil && !model.ValidCategory(*req.Category) {
		jsonError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if req.ExpirationDate != nil {
		if _, err := model.ParseDate(*req.ExpirationDate); err != nil {
			jsonError(w, http.StatusBadRequest, "expiration_date must be a valid YYYY-MM-DD date")
			return
		}
	}

	patch := store.ItemPatch{
		Name:           req.Name,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		ExpirationDate: req.ExpirationDate,
	}

	err := store.UpdateItem(r.Context(), h.DB, claims.UserID, r.PathValue("id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. Deleting a nonexistent id
// succeeds (idempotent).
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteItem(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Expiring handles GET /api/items/expiring?days=7: items expiring between
// today and today+days, nearest first, each annotated with urgency.
func (h *ItemsHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	horizon := model.DefaultExpiringHorizonDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		horizon = n
	}

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	today := model.Today()
	expiring, err := model.ExpiringWithin(items, today, horizon)
	if err != nil {
		slog.Error("malformed expiration date in store", "error", err)
		jsonError(w, http.StatusInternalServerError, "malformed item data")
		return
	}

	result := make([]expiringItem, 0, len(expiring))
	for _, item := range expiring {
		date, _ := model.ParseDate(item.ExpirationDate)
		daysLeft := model.DaysUntil(date, today)
		result = append(result, expiringItem{
			Item:     item,
			DaysLeft: daysLeft,
			Urgency:  model.UrgencyFor(daysLeft),
		})
	}

	jsonResponse(w, http.StatusOK, result)
}

// Expired handles GET /api/items/expired: items whose expiration date has
// already passed. How the client warns the user is its own business.
func (h *ItemsHandler) Expired(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	expired, err := model.Expired(items, model.Today())
	if err != nil {
		slog.Error("malformed expiration date in store", "error", err)
		jsonError(w, http.StatusInternalServerError, "malformed item data")
		return
	}
	if expired == nil {
		expired = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, expired)
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = store.SetItemImage(r.Context(), h.DB, claims.UserID, id, photo.Data, photo.MIME)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to save image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	data, mime, err := store.GetItemImage(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
