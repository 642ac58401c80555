package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roll-backend/internal/domains/place/model"
	"roll-backend/internal/domains/place/service"
	"roll-backend/internal/shared/response"
)

// =====================================================
// PLACE HANDLER
// =====================================================

type PlaceHandler struct {
	placeService service.ServiceInterface
}

func NewPlaceHandler(placeService service.ServiceInterface) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// RegisterRoutes mounts /estabelecimentos. /search is static and wins over /:id.
func (h *PlaceHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/estabelecimentos")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.GET("/:id/public", h.PublicProfile)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create POST /estabelecimentos
func (h *PlaceHandler) Create(c *gin.Context) {
	var req model.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	place, err := h.placeService.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, place)
}

// List GET /estabelecimentos
func (h *PlaceHandler) List(c *gin.Context) {
	places, err := h.placeService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, places)
}

// Search GET /estabelecimentos/search?name=&tag=&category=
func (h *PlaceHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	places, err := h.placeService.Search(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, places)
}

// Get GET /estabelecimentos/:id
func (h *PlaceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	place, err := h.placeService.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, place)
}

// PublicProfile GET /estabelecimentos/:id/public
func (h *PlaceHandler) PublicProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	place, err := h.placeService.PublicProfile(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, place)
}

// Update PUT /estabelecimentos/:id
func (h *PlaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	place, err := h.placeService.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, place)
}

// Delete DELETE /estabelecimentos/:id
func (h *PlaceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.placeService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	response.NoContent(c)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(model.NewPlaceNotFoundError())
		return uuid.Nil, false
	}
	return id, true
}
