package router

import (
	"net/http"

	"catalogo/internal/handler"
	"catalogo/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	descriptionHandler *handler.DescriptionHandler,
	authHandler *handler.AuthHandler,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/descricao", descriptionHandler.Draft)

	// Admin routes require a valid bearer token.
	adminAuth := middleware.JWTAuth(jwtSecret, logger)
	mux.Handle("/admin/produtos", adminAuth(http.HandlerFunc(productHandler.Create)))

	// Collection route: list only.
	mux.HandleFunc("/produtos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		productHandler.List(w, r)
	})

	// Item routes dispatch on method.
	mux.HandleFunc("/produtos/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			productHandler.Get(w, r)
		case http.MethodPatch:
			productHandler.Update(w, r)
		case http.MethodDelete:
			productHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
