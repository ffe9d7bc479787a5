package enrollment

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/foodmate/pkg/middleware"
	"github.com/fkhayef/foodmate/pkg/response"
)

// Handler handles HTTP requests for enrollment operations. Enroll is mounted
// under the group subtree; the rest live under /enrollments.
type Handler struct {
	service *Service
}

// NewHandler creates a new enrollment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /enrollments endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/my", h.ListMine)
	r.Get("/received", h.ListReceived)
	r.Post("/{enrollmentId}/accept", h.Accept)
	r.Post("/{enrollmentId}/reject", h.Reject)

	return r
}

// Enroll handles POST /groups/{groupId}/enroll
// @Summary      Enroll in a group
// @Description  Submit an enrollment; fails if the caller already has a live enrollment or the group is full
// @Tags         enrollments
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      201 {object} response.APIResponse{data=Response}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Failure      410 {object} response.APIResponse
// @Router       /groups/{groupId}/enroll [post]
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
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

	enrollment, err := h.service.Enroll(r.Context(), groupID, memberID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, enrollment.ToResponse())
}

// Accept handles POST /enrollments/{enrollmentId}/accept
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Accept)
}

// Reject handles POST /enrollments/{enrollmentId}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request,
	decide func(ctx context.Context, enrollmentID, ownerID int64) (*Enrollment, error)) {

	ownerID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "login required")
		return
	}

	enrollmentID, err := strconv.ParseInt(chi.URLParam(r, "enrollmentId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid enrollment ID")
		return
	}

	enrollment, err := decide(r.Context(), enrollmentID, ownerID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, enrollment.ToResponse())
}

// ListMine handles GET /enrollments/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.listEnrollments(w, r, h.service.ListMine)
}

// ListReceived handles GET /enrollments/received
func (h *Handler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.listEnrollments(w, r, h.service.ListReceived)
}

func (h *Handler) listEnrollments(w http.ResponseWriter, r *http.Request,
	fetch func(ctx context.Context, memberID int64, status string, page, perPage int) ([]*Enrollment, int, error)) {

	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "login required")
		return
	}

	status := r.URL.Query().Get("status")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	// Same clamp the service applies, so Meta reports the effective values.
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	enrollments, total, err := fetch(r.Context(), memberID, status, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list enrollments")
		return
	}

	enrollmentResponses := make([]*Response, len(enrollments))
	for i, e := range enrollments {
		enrollmentResponses[i] = e.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, enrollmentResponses, meta)
}
