package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/feeds"
)

// FeedClients bundles the external feed clients the router wires into
// handlers.
type FeedClients struct {
	Recalls  *feeds.RecallClient
	Recipes  *feeds.RecipeClient
	Products *feeds.ProductClient
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, clients FeedClients) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	summaryHandler := &SummaryHandler{DB: db}
	feedsHandler := &FeedsHandler{
		DB:       db,
		Recalls:  clients.Recalls,
		Recipes:  clients.Recipes,
		Products: clients.Products,
	}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: account creation and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Inventory (all scoped to the authenticated owner).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/expiring", authMW(http.HandlerFunc(itemsHandler.Expiring)))
	mux.Handle("GET /api/items/expired", authMW(http.HandlerFunc(itemsHandler.Expired)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PATCH /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.UploadImage)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	// Home-screen summary.
	mux.Handle("GET /api/summary", authMW(http.HandlerFunc(summaryHandler.Get)))

	// External feeds.
	mux.Handle("GET /api/recalls", authMW(http.HandlerFunc(feedsHandler.ListRecalls)))
	mux.Handle("GET /api/products/{barcode}", authMW(http.HandlerFunc(feedsHandler.GetProduct)))
	mux.Handle("GET /api/recipes/suggestions", authMW(http.HandlerFunc(feedsHandler.Suggestions)))
	mux.Handle("GET /api/recipes/{id}", authMW(http.HandlerFunc(feedsHandler.GetRecipe)))

	return mux
}
