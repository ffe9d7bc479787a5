package group

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/foodmate/internal/comment"
	"github.com/fkhayef/foodmate/internal/enrollment"
	"github.com/fkhayef/foodmate/pkg/geo"
	"github.com/fkhayef/foodmate/pkg/middleware"
	"github.com/fkhayef/foodmate/pkg/response"
	"github.com/fkhayef/foodmate/pkg/validate"
)

// Handler handles HTTP requests for group operations. It owns the /groups
// subtree and mounts the enrollment and comment handlers under a group path.
type Handler struct {
	service     *Service
	enrollments *enrollment.Handler
	comments    *comment.Handler
}

// NewHandler creates a new group handler
func NewHandler(service *Service, enrollments *enrollment.Handler, comments *comment.Handler) *Handler {
	return &Handler{service: service, enrollments: enrollments, comments: comments}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListAll)
	r.Get("/search", h.Search)
	r.Get("/today", h.ListToday)
	r.Get("/nearby", h.ListNearby)

	r.Route("/{groupId}", func(r chi.Router) {
		r.Get("/", h.GetDetail)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)

		r.Post("/enroll", h.enrollments.Enroll)
		r.Mount("/comments", h.comments.Routes())
	})

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a meetup group; the caller becomes the owner and a chat room is created alongside
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body Request true "Group draft"
// @Success      201 {object} response.APIResponse{data=Response}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "login required")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	group, err := h.service.Create(r.Context(), memberID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// GetDetail handles GET /groups/{groupId}
// @Summary      Get group detail
// @Description  Get a group with its current headcount and chat room reference
// @Tags         groups
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=DetailResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      410 {object} response.APIResponse
// @Router       /groups/{groupId} [get]
func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	group, room, current, err := h.service.GetDetail(r.Context(), groupID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, group.ToDetailResponse(current, room.ID))
}

// Update handles PUT /groups/{groupId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "login required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	group, err := h.service.Update(r.Context(), groupID, memberID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// Delete handles DELETE /groups/{groupId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "login required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	if err := h.service.Delete(r.Context(), groupID, memberID); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

// Search handles GET /groups/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		response.BadRequest(w, "keyword is required")
		return
	}

	h.listGroups(w, r, func(page, perPage int) ([]*Group, int, error) {
		return h.service.Search(r.Context(), keyword, page, perPage)
	})
}

// ListToday handles GET /groups/today
func (h *Handler) ListToday(w http.ResponseWriter, r *http.Request) {
	h.listGroups(w, r, func(page, perPage int) ([]*Group, int, error) {
		return h.service.ListToday(r.Context(), page, perPage)
	})
}

// ListAll handles GET /groups
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.listGroups(w, r, func(page, perPage int) ([]*Group, int, error) {
		return h.service.ListAll(r.Context(), page, perPage)
	})
}

// ListNearby handles GET /groups/nearby
func (h *Handler) ListNearby(w http.ResponseWriter, r *http.Request) {
	point, err := geo.NewPoint(r.URL.Query().Get("latitude"), r.URL.Query().Get("longitude"))
	if err != nil {
		response.BadRequest(w, "Invalid coordinates")
		return
	}

	h.listGroups(w, r, func(page, perPage int) ([]*Group, int, error) {
		return h.service.ListNearby(r.Context(), point, page, perPage)
	})
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request, fetch func(page, perPage int) ([]*Group, int, error)) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	// Same clamp the service applies, so Meta reports the effective values.
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	groups, total, err := fetch(page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	groupResponses := make([]*Response, len(groups))
	for i, g := range groups {
		groupResponses[i] = g.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, groupResponses, meta)
}
