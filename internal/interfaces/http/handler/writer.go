package handler

import (
	"github.com/gin-gonic/gin"
	writerapp "github.com/laiyolobaru/backend/internal/application/writer"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

// WriterListRequest holds the writer list query
type WriterListRequest struct {
	dto.ListRequest
	Dusun string `form:"dusun" binding:"omitempty,dusun"`
}

// WriterRequest represents the request body for creating or updating a writer.
// The name must be unique within the dusun.
type WriterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Dusun    string `json:"dusun" binding:"required,dusun"`
	Position string `json:"position" binding:"max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Bio      string `json:"bio" binding:"max=1000"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url,max=500"`
}

func (r WriterRequest) toInput() writerapp.Input {
	return writerapp.Input{
		Name:     r.Name,
		Dusun:    r.Dusun,
		Position: r.Position,
		Phone:    r.Phone,
		Bio:      r.Bio,
		PhotoURL: r.PhotoURL,
	}
}

// WriterHandler handles writer endpoints
type WriterHandler struct {
	BaseHandler
	writerService WriterService
}

// NewWriterHandler creates a new writer handler
func NewWriterHandler(writerService WriterService) *WriterHandler {
	return &WriterHandler{writerService: writerService}
}

// List godoc
// @Summary      List writers
// @Tags         writers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by name or position"
// @Param        order_by query string false "Sort field" Enums(name, dusun, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        dusun query string false "Dusun code or label"
// @Success      200 {object} dto.Response{data=[]writerapp.Response,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /writers [get]
// @Router       /public/writers [get]
func (h *WriterHandler) List(c *gin.Context) {
	var req WriterListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	query := req.ToQuery()

	writers, total, err := h.writerService.List(c.Request.Context(), writerapp.ListFilter{
		ListQuery: query,
		Dusun:     req.Dusun,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, writers, total, query)
}

// Get godoc
// @Summary      Get writer
// @Tags         writers
// @Produce      json
// @Param        id path string true "Writer ID" format(uuid)
// @Success      200 {object} dto.Response{data=writerapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /writers/{id} [get]
func (h *WriterHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	w, err := h.writerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// Create godoc
// @Summary      Create writer
// @Tags         writers
// @Accept       json
// @Produce      json
// @Param        request body WriterRequest true "Writer"
// @Success      201 {object} dto.Response{data=writerapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /writers [post]
func (h *WriterHandler) Create(c *gin.Context) {
	var req WriterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	w, err := h.writerService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, w)
}

// Update godoc
// @Summary      Update writer
// @Tags         writers
// @Accept       json
// @Produce      json
// @Param        id path string true "Writer ID" format(uuid)
// @Param        request body WriterRequest true "Writer"
// @Success      200 {object} dto.Response{data=writerapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /writers/{id} [put]
func (h *WriterHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req WriterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	w, err := h.writerService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// Delete godoc
// @Summary      Delete writer
// @Description  Writers that still author articles cannot be deleted
// @Tags         writers
// @Param        id path string true "Writer ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /writers/{id} [delete]
func (h *WriterHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.writerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
