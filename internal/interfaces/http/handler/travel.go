package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	travelapp "github.com/laiyolobaru/backend/internal/application/travel"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// TravelListRequest holds the destination list query
type TravelListRequest struct {
	dto.ListRequest
	Dusun      string `form:"dusun" binding:"omitempty,dusun"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// TravelRequest represents the request body for creating or updating a destination.
// A zero ticket price means free entry.
type TravelRequest struct {
	Name         string          `json:"name" binding:"required,max=150"`
	CategoryID   uuid.UUID       `json:"category_id" binding:"required"`
	Dusun        string          `json:"dusun" binding:"required,dusun"`
	Description  string          `json:"description" binding:"max=5000"`
	Address      string          `json:"address" binding:"max=255"`
	ImageURL     string          `json:"image_url" binding:"omitempty,url,max=500"`
	TicketPrice  decimal.Decimal `json:"ticket_price"`
	OpeningHours string          `json:"opening_hours" binding:"max=100"`
	Facilities   []string        `json:"facilities" binding:"max=30,dive,max=100"`
	Latitude     *float64        `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64        `json:"longitude" binding:"omitempty,longitude"`
}

func (r TravelRequest) toInput() travelapp.Input {
	return travelapp.Input{
		Name:         r.Name,
		CategoryID:   r.CategoryID,
		Dusun:        r.Dusun,
		Description:  r.Description,
		Address:      r.Address,
		ImageURL:     r.ImageURL,
		TicketPrice:  r.TicketPrice,
		OpeningHours: r.OpeningHours,
		Facilities:   r.Facilities,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

// TravelCategoryRequest represents the request body for a travel category
type TravelCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// TravelHandler handles travel destinations and their categories
type TravelHandler struct {
	BaseHandler
	travelService   TravelService
	categoryService TravelCategoryService
}

// NewTravelHandler creates a new travel handler
func NewTravelHandler(travelService TravelService, categoryService TravelCategoryService) *TravelHandler {
	return &TravelHandler{
		travelService:   travelService,
		categoryService: categoryService,
	}
}

// List godoc
// @Summary      List travel destinations
// @Tags         travels
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by name or description"
// @Param        order_by query string false "Sort field" Enums(name, dusun, ticket_price, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        dusun query string false "Dusun code or label"
// @Param        category_id query string false "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]travelapp.Response,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /travels [get]
// @Router       /public/travels [get]
func (h *TravelHandler) List(c *gin.Context) {
	var req TravelListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	query := req.ToQuery()
	filter := travelapp.ListFilter{ListQuery: query, Dusun: req.Dusun}
	if id, err := uuid.Parse(req.CategoryID); err == nil {
		filter.CategoryID = &id
	}

	items, total, err := h.travelService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, items, total, query)
}

// Get godoc
// @Summary      Get travel destination
// @Tags         travels
// @Produce      json
// @Param        id path string true "Destination ID" format(uuid)
// @Success      200 {object} dto.Response{data=travelapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /travels/{id} [get]
// @Router       /public/travels/{id} [get]
func (h *TravelHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	item, err := h.travelService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @Summary      Create travel destination
// @Tags         travels
// @Accept       json
// @Produce      json
// @Param        request body TravelRequest true "Destination"
// @Success      201 {object} dto.Response{data=travelapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travels [post]
func (h *TravelHandler) Create(c *gin.Context) {
	var req TravelRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.travelService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @Summary      Update travel destination
// @Tags         travels
// @Accept       json
// @Produce      json
// @Param        id path string true "Destination ID" format(uuid)
// @Param        request body TravelRequest true "Destination"
// @Success      200 {object} dto.Response{data=travelapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travels/{id} [put]
func (h *TravelHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req TravelRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.travelService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete travel destination
// @Tags         travels
// @Param        id path string true "Destination ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travels/{id} [delete]
func (h *TravelHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.travelService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCategories godoc
// @Summary      List travel categories
// @Tags         travel-categories
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by name"
// @Success      200 {object} dto.Response{data=[]travelapp.CategoryResponse,meta=dto.Meta}
// @Router       /travel-categories [get]
// @Router       /public/travel-categories [get]
func (h *TravelHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	query := req.ToQuery()

	items, total, err := h.categoryService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, items, total, query)
}

// GetCategory godoc
// @Summary      Get travel category
// @Tags         travel-categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=travelapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travel-categories/{id} [get]
func (h *TravelHandler) GetCategory(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	item, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// CreateCategory godoc
// @Summary      Create travel category
// @Tags         travel-categories
// @Accept       json
// @Produce      json
// @Param        request body TravelCategoryRequest true "Category"
// @Success      201 {object} dto.Response{data=travelapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travel-categories [post]
func (h *TravelHandler) CreateCategory(c *gin.Context) {
	var req TravelCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.categoryService.Create(c.Request.Context(), travelapp.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateCategory godoc
// @Summary      Update travel category
// @Tags         travel-categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body TravelCategoryRequest true "Category"
// @Success      200 {object} dto.Response{data=travelapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travel-categories/{id} [put]
func (h *TravelHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req TravelCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.categoryService.Update(c.Request.Context(), id, travelapp.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteCategory godoc
// @Summary      Delete travel category
// @Description  Categories still used by a destination cannot be deleted
// @Tags         travel-categories
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /travel-categories/{id} [delete]
func (h *TravelHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
