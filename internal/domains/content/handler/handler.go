package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/domains/content/model"
	"compliance-backend/internal/domains/content/service"
	userModel "compliance-backend/internal/domains/user/model"
	"compliance-backend/internal/shared/middleware"
	"compliance-backend/internal/shared/response"
)

type ContentHandler struct {
	contentService service.ServiceInterface
}

func NewContentHandler(contentService service.ServiceInterface) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListContents
// GET /api/v1/content
func (h *ContentHandler) ListContents(c *gin.Context) {
	contents, err := h.contentService.ListContents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, contents, &response.Meta{Total: len(contents)})
}

// GetContent
// GET /api/v1/content/:id
func (h *ContentHandler) GetContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	content, err := h.contentService.GetContent(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, content)
}

// UploadContent
// POST /api/v1/content/upload (multipart: title, file)
func (h *ContentHandler) UploadContent(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication credentials were not provided.")
		return
	}

	file, closeFile, err := formFile(c)
	if err != nil {
		response.BadRequest(c, "The submitted data was not a file. Check the encoding type on the form.")
		return
	}
	defer closeFile()

	req := model.UploadContentRequest{
		Title: c.PostForm("title"),
		File:  file,
	}

	content, err := h.contentService.UploadContent(c.Request.Context(), actorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, content)
}

// UpdateContent
// PATCH /api/v1/content/:id (JSON title, or multipart title and/or file)
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication credentials were not provided.")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateContentRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, closeFile, err := formFile(c)
		if err != nil {
			response.BadRequest(c, "The submitted data was not a file. Check the encoding type on the form.")
			return
		}
		defer closeFile()

		req.File = file
		if title, present := c.GetPostForm("title"); present {
			req.Title = &title
		}
	} else {
		var body struct {
			Title *string `json:"title"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, "JSON parse error")
			return
		}
		req.Title = body.Title
	}

	content, err := h.contentService.UpdateContent(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, content)
}

// formFile returns the optional "file" part; a nil file means none was sent
func formFile(c *gin.Context) (*model.FileUpload, func(), error) {
	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return &model.FileUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType(header),
		Reader:      f,
	}, func() { f.Close() }, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondContentError(c, model.NewContentNotFoundError())
		return uuid.Nil, false
	}
	return id, true
}

func (h *ContentHandler) handleError(c *gin.Context, err error) {
	if response.Validation(c, err) {
		return
	}

	if errors.Is(err, userModel.ErrUserNotFound) {
		response.Unauthorized(c, "User not found")
		return
	}

	var contentErr *model.ContentError
	if errors.As(err, &contentErr) {
		respondContentError(c, contentErr)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("Content request failed")
	response.InternalServerError(c, "Internal server error")
}

func respondContentError(c *gin.Context, err *model.ContentError) {
	status, code := mapContentError(err)
	response.ErrorResponse(c, status, code, err.Message)
}

func mapContentError(err *model.ContentError) (int, string) {
	switch err.Code {
	case model.ErrCodeContentNotFound:
		return http.StatusNotFound, err.Code
	case model.ErrCodeDuplicateTitle:
		return http.StatusConflict, err.Code
	case model.ErrCodeNotOwner:
		return http.StatusForbidden, err.Code
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
