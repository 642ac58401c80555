package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roll-backend/internal/domains/comment/model"
	"roll-backend/internal/domains/comment/service"
	"roll-backend/internal/shared/response"
)

type CommentHandler struct {
	commentService service.ServiceInterface
}

func NewCommentHandler(commentService service.ServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/comments", h.Create)
	r.DELETE("/comments/:id", h.Delete)
	r.GET("/estabelecimentos/:id/comments", h.ListByPlace)
}

// Create POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, comment)
}

// Delete DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(model.NewCommentNotFoundError())
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	response.NoContent(c)
}

// ListByPlace GET /estabelecimentos/:id/comments
func (h *CommentHandler) ListByPlace(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(model.NewPlaceMissingError())
		return
	}

	comments, err := h.commentService.ListByPlace(c.Request.Context(), placeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, comments)
}
