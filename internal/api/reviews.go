package api

import (
	"net/http"
	"strconv"

	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/service"
)

// ReviewsHandler handles reviews, reactions and comments.
type ReviewsHandler struct {
	Reviews   *service.ReviewService
	Reactions *service.ReactionService
}

type createReviewRequest struct {
	ItemID  int64  `json:"itemId" validate:"required,gt=0"`
	Stars   int    `json:"stars"`
	Content string `json:"content" validate:"max=5000"`
}

type reactionRequest struct {
	ReviewID int64 `json:"reviewId" validate:"required,gt=0"`
	IsUp     bool  `json:"isUp"`
}

type createCommentRequest struct {
	ReviewID int64  `json:"reviewId" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required,max=2000"`
}

// List handles GET /api/reviews.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.URL.Query().Get("itemId"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "itemId is required")
		return
	}

	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = model.ReviewSortThumbs
	}

	cards, err := h.Reviews.List(r.Context(), service.ReviewQuery{
		ItemID:   itemID,
		ViewerID: viewerID(r.Context()),
		Sort:     sort,
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, cards)
}

// Create handles POST /api/reviews.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.Reviews.Create(r.Context(), viewerID(r.Context()), req.ItemID, req.Stars, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, card)
}

// React handles POST /api/reviews/reaction.
func (h *ReviewsHandler) React(w http.ResponseWriter, r *http.Request) {
	var req reactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	counts, err := h.Reactions.Toggle(r.Context(), viewerID(r.Context()), req.ReviewID, req.IsUp)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, counts)
}

// Comments handles GET /api/comments/review/{reviewId}.
func (h *ReviewsHandler) Comments(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathID(r, "reviewId")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	comments, err := h.Reviews.Comments(r.Context(), reviewID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	jsonResponse(w, http.StatusOK, comments)
}

// Comment handles POST /api/comments.
func (h *ReviewsHandler) Comment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.Reviews.Comment(r.Context(), viewerID(r.Context()), req.ReviewID, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, comment)
}
