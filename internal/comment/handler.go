package comment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/foodmate/pkg/middleware"
	"github.com/fkhayef/foodmate/pkg/response"
	"github.com/fkhayef/foodmate/pkg/validate"
)

// Handler handles HTTP requests for discussion threads. It is mounted under
// /groups/{groupId}/comments, so every operation carries the group path.
type Handler struct {
	service *Service
}

// NewHandler creates a new comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for comment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{commentId}", h.Update)
	r.Delete("/{commentId}", h.Delete)

	r.Post("/{commentId}/replies", h.CreateReply)
	r.Put("/{commentId}/replies/{replyId}", h.UpdateReply)
	r.Delete("/{commentId}/replies/{replyId}", h.DeleteReply)

	return r
}

type pathIDs struct {
	memberID  int64
	groupID   int64
	commentID int64
	replyID   int64
}

// parsePath resolves the caller and the path identifiers for the request.
// commentID and replyID are only parsed when the route defines them.
func parsePath(w http.ResponseWriter, r *http.Request, wantComment, wantReply bool) (pathIDs, bool) {
	var ids pathIDs
	var ok bool

	ids.memberID, ok = middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "login required")
		return ids, false
	}

	var err error
	ids.groupID, err = strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return ids, false
	}

	if wantComment {
		ids.commentID, err = strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid comment ID")
			return ids, false
		}
	}

	if wantReply {
		ids.replyID, err = strconv.ParseInt(chi.URLParam(r, "replyId"), 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid reply ID")
			return ids, false
		}
	}

	return ids, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return nil, false
	}
	return &req, true
}

// Create handles POST /groups/{groupId}/comments
// @Summary      Add a comment
// @Description  Create a comment on a live group
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        request body Request true "Comment content"
// @Success      201 {object} response.APIResponse{data=Response}
// @Failure      404 {object} response.APIResponse
// @Failure      410 {object} response.APIResponse
// @Router       /groups/{groupId}/comments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, false, false)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	comment, err := h.service.AddComment(r.Context(), ids.groupID, ids.memberID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, comment.ToResponse())
}

// Update handles PUT /groups/{groupId}/comments/{commentId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, true, false)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), ids.groupID, ids.commentID, ids.memberID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, comment.ToResponse())
}

// Delete handles DELETE /groups/{groupId}/comments/{commentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, true, false)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), ids.groupID, ids.commentID, ids.memberID); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}

// CreateReply handles POST /groups/{groupId}/comments/{commentId}/replies
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, true, false)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	reply, err := h.service.AddReply(r.Context(), ids.groupID, ids.commentID, ids.memberID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, reply.ToResponse())
}

// UpdateReply handles PUT /groups/{groupId}/comments/{commentId}/replies/{replyId}
func (h *Handler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, true, true)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	reply, err := h.service.UpdateReply(r.Context(), ids.groupID, ids.commentID, ids.replyID, ids.memberID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, reply.ToResponse())
}

// DeleteReply handles DELETE /groups/{groupId}/comments/{commentId}/replies/{replyId}
func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, true, true)
	if !ok {
		return
	}

	if err := h.service.DeleteReply(r.Context(), ids.groupID, ids.commentID, ids.replyID, ids.memberID); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Reply deleted successfully"})
}

// List handles GET /groups/{groupId}/comments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, ok := parsePath(w, r, false, false)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	// Same clamp the service applies, so Meta reports the effective values.
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	comments, total, err := h.service.List(r.Context(), ids.groupID, page, perPage)
	if err != nil {
		response.FromError(w, err)
		return
	}

	commentResponses := make([]*Response, len(comments))
	for i, c := range comments {
		commentResponses[i] = c.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, commentResponses, meta)
}
