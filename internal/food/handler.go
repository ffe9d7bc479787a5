package food

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/foodmate/pkg/response"
)

// Handler handles HTTP requests for food categories
type Handler struct {
	repo *Repository
}

// NewHandler creates a new food handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns the router for food endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// List handles GET /foods
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list foods")
		return
	}

	response.JSON(w, http.StatusOK, foods)
}
