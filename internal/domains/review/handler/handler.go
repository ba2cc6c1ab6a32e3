package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/domains/review/model"
	"compliance-backend/internal/domains/review/service"
	userModel "compliance-backend/internal/domains/user/model"
	"compliance-backend/internal/shared/middleware"
	"compliance-backend/internal/shared/response"
)

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListReviewItems
// GET /api/v1/content/:id/review-status
func (h *ReviewHandler) ListReviewItems(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondReviewError(c, model.NewContentNotFoundError())
		return
	}

	items, err := h.reviewService.ListReviewItems(c.Request.Context(), contentID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{Total: len(items)})
}

// UpdateReviewItem
// PUT /api/v1/content/:id/review/:review_item_id
func (h *ReviewHandler) UpdateReviewItem(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication credentials were not provided.")
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondReviewError(c, model.NewContentNotFoundError())
		return
	}
	itemID, err := uuid.Parse(c.Param("review_item_id"))
	if err != nil {
		respondReviewError(c, model.NewReviewItemNotFoundError())
		return
	}

	var req model.UpdateReviewItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "JSON parse error")
		return
	}

	item, err := h.reviewService.UpdateReviewItem(c.Request.Context(), actorID, contentID, itemID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	if response.Validation(c, err) {
		return
	}

	if errors.Is(err, userModel.ErrUserNotFound) {
		response.Unauthorized(c, "User not found")
		return
	}

	var reviewErr *model.ReviewError
	if errors.As(err, &reviewErr) {
		respondReviewError(c, reviewErr)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("Review request failed")
	response.InternalServerError(c, "Internal server error")
}

func respondReviewError(c *gin.Context, err *model.ReviewError) {
	status, code := mapReviewError(err)
	response.ErrorResponse(c, status, code, err.Message)
}

func mapReviewError(err *model.ReviewError) (int, string) {
	switch err.Code {
	case model.ErrCodeContentNotFound, model.ErrCodeReviewItemNotFound:
		return http.StatusNotFound, err.Code
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
