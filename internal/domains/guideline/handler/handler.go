package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/domains/guideline/model"
	"compliance-backend/internal/domains/guideline/service"
	"compliance-backend/internal/shared/response"
)

type GuidelineHandler struct {
	guidelineService service.ServiceInterface
}

func NewGuidelineHandler(guidelineService service.ServiceInterface) *GuidelineHandler {
	return &GuidelineHandler{guidelineService: guidelineService}
}

// ListGuidelines
// GET /api/v1/guidelines
func (h *GuidelineHandler) ListGuidelines(c *gin.Context) {
	guidelines, err := h.guidelineService.ListGuidelines(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, guidelines, &response.Meta{Total: len(guidelines)})
}

// GetGuideline
// GET /api/v1/guidelines/:id
func (h *GuidelineHandler) GetGuideline(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	guideline, err := h.guidelineService.GetGuideline(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guideline)
}

// CreateGuideline
// POST /api/v1/guidelines
func (h *GuidelineHandler) CreateGuideline(c *gin.Context) {
	var req model.CreateGuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "JSON parse error")
		return
	}

	guideline, err := h.guidelineService.CreateGuideline(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, guideline)
}

// ReplaceGuideline
// PUT /api/v1/guidelines/:id
func (h *GuidelineHandler) ReplaceGuideline(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CreateGuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "JSON parse error")
		return
	}

	guideline, err := h.guidelineService.ReplaceGuideline(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guideline)
}

// PatchGuideline
// PATCH /api/v1/guidelines/:id
func (h *GuidelineHandler) PatchGuideline(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.PatchGuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "JSON parse error")
		return
	}

	guideline, err := h.guidelineService.PatchGuideline(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guideline)
}

// parseID answers 404 for ids that cannot name a guideline
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		e := model.NewGuidelineNotFoundError()
		response.ErrorResponse(c, http.StatusNotFound, e.Code, e.Message)
		return uuid.Nil, false
	}
	return id, true
}

func (h *GuidelineHandler) handleError(c *gin.Context, err error) {
	if response.Validation(c, err) {
		return
	}

	status, code := mapGuidelineError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Guideline request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}

	var gErr *model.GuidelineError
	errors.As(err, &gErr)
	response.ErrorResponse(c, status, code, gErr.Message)
}

func mapGuidelineError(err error) (int, string) {
	var gErr *model.GuidelineError
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case model.ErrCodeGuidelineNotFound:
			return http.StatusNotFound, gErr.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
