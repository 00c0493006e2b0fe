package handler

import (
	"github.com/gin-gonic/gin"
	umkmapp "github.com/laiyolobaru/backend/internal/application/umkm"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// UMKMListRequest holds the UMKM list query
type UMKMListRequest struct {
	dto.ListRequest
	Dusun    string `form:"dusun" binding:"omitempty,dusun"`
	Category string `form:"category" binding:"omitempty,oneof=kuliner kerajinan pertanian perikanan jasa lainnya"`
}

// UMKMRequest represents the request body for creating or updating an UMKM
type UMKMRequest struct {
	Name        string           `json:"name" binding:"required,max=150"`
	OwnerName   string           `json:"owner_name" binding:"required,max=100"`
	Dusun       string           `json:"dusun" binding:"required,dusun"`
	Category    string           `json:"category" binding:"required,oneof=kuliner kerajinan pertanian perikanan jasa lainnya"`
	Description string           `json:"description" binding:"max=2000"`
	Address     string           `json:"address" binding:"max=255"`
	Phone       string           `json:"phone" binding:"omitempty,max=20"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url,max=500"`
	PriceMin    *decimal.Decimal `json:"price_min"`
	PriceMax    *decimal.Decimal `json:"price_max"`
	Latitude    *float64         `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64         `json:"longitude" binding:"omitempty,longitude"`
}

func (r UMKMRequest) toInput() umkmapp.Input {
	return umkmapp.Input{
		Name:        r.Name,
		OwnerName:   r.OwnerName,
		Dusun:       r.Dusun,
		Category:    r.Category,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		ImageURL:    r.ImageURL,
		PriceMin:    r.PriceMin,
		PriceMax:    r.PriceMax,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// UMKMHandler handles UMKM endpoints
type UMKMHandler struct {
	BaseHandler
	umkmService UMKMService
}

// NewUMKMHandler creates a new UMKM handler
func NewUMKMHandler(umkmService UMKMService) *UMKMHandler {
	return &UMKMHandler{umkmService: umkmService}
}

// List godoc
// @Summary      List UMKM
// @Tags         umkm
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by name, owner or description"
// @Param        order_by query string false "Sort field" Enums(name, dusun, category, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        dusun query string false "Dusun code or label"
// @Param        category query string false "Category" Enums(kuliner, kerajinan, pertanian, perikanan, jasa, lainnya)
// @Success      200 {object} dto.Response{data=[]umkmapp.Response,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /umkm [get]
// @Router       /public/umkm [get]
func (h *UMKMHandler) List(c *gin.Context) {
	var req UMKMListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	query := req.ToQuery()

	items, total, err := h.umkmService.List(c.Request.Context(), umkmapp.ListFilter{
		ListQuery: query,
		Dusun:     req.Dusun,
		Category:  req.Category,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, items, total, query)
}

// CountByDusun godoc
// @Summary      Count UMKM per dusun
// @Description  Every dusun is listed, with zero when it has no entries
// @Tags         public
// @Produce      json
// @Success      200 {object} dto.Response{data=[]umkmapp.DusunCount}
// @Router       /public/umkm/dusun-count [get]
func (h *UMKMHandler) CountByDusun(c *gin.Context) {
	counts, err := h.umkmService.CountByDusun(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// Get godoc
// @Summary      Get UMKM
// @Tags         umkm
// @Produce      json
// @Param        id path string true "UMKM ID" format(uuid)
// @Success      200 {object} dto.Response{data=umkmapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /umkm/{id} [get]
// @Router       /public/umkm/{id} [get]
func (h *UMKMHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	item, err := h.umkmService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @Summary      Create UMKM
// @Tags         umkm
// @Accept       json
// @Produce      json
// @Param        request body UMKMRequest true "UMKM"
// @Success      201 {object} dto.Response{data=umkmapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /umkm [post]
func (h *UMKMHandler) Create(c *gin.Context) {
	var req UMKMRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.umkmService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @Summary      Update UMKM
// @Tags         umkm
// @Accept       json
// @Produce      json
// @Param        id path string true "UMKM ID" format(uuid)
// @Param        request body UMKMRequest true "UMKM"
// @Success      200 {object} dto.Response{data=umkmapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /umkm/{id} [put]
func (h *UMKMHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req UMKMRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.umkmService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete UMKM
// @Tags         umkm
// @Param        id path string true "UMKM ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /umkm/{id} [delete]
func (h *UMKMHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.umkmService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
