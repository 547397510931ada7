package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router over the given store and applies
// all routes.
func GetRouter(store WorkbookStore) http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	return applyRoutes(r, &handler{store: store})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/data", h.getData)
		r.Post("/add", h.postAdd)
		r.Post("/update", h.postUpdate)
		r.Post("/delete", h.postDelete)
		r.Get("/health", h.getHealth)
	})

	return r
}

// corsMiddleware answers preflights and stamps permissive CORS headers, the
// way the browser frontend expects.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
