package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	demographyapp "github.com/laiyolobaru/backend/internal/application/demography"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/shopspring/decimal"
)

const monografisPDFName = "monografis-desa-laiyolo-baru.pdf"

// ProfileRequest represents the village profile form
type ProfileRequest struct {
	VillageName   string          `json:"village_name" binding:"required,max=100"`
	District      string          `json:"district" binding:"required,max=100"`
	Regency       string          `json:"regency" binding:"required,max=100"`
	Province      string          `json:"province" binding:"required,max=100"`
	VillageHead   string          `json:"village_head" binding:"max=100"`
	AreaKm2       decimal.Decimal `json:"area_km2"`
	AltitudeM     int             `json:"altitude_m" binding:"min=0,max=9000"`
	BoundaryNorth string          `json:"boundary_north" binding:"max=150"`
	BoundarySouth string          `json:"boundary_south" binding:"max=150"`
	BoundaryEast  string          `json:"boundary_east" binding:"max=150"`
	BoundaryWest  string          `json:"boundary_west" binding:"max=150"`
	PostalCode    string          `json:"postal_code" binding:"omitempty,numeric,len=5"`
	Description   string          `json:"description" binding:"max=5000"`
}

// StatListRequest filters the statistic rows
type StatListRequest struct {
	Category string `form:"category" binding:"omitempty,oneof=age_group education occupation religion marital_status"`
	Dusun    string `form:"dusun" binding:"omitempty,dusun"`
}

// StatRequest writes the counts of one (category, label, dusun)
type StatRequest struct {
	Category string `json:"category" binding:"required,oneof=age_group education occupation religion marital_status"`
	Label    string `json:"label" binding:"required,max=100"`
	Dusun    string `json:"dusun" binding:"required,dusun"`
	Male     int    `json:"male" binding:"min=0,max=100000"`
	Female   int    `json:"female" binding:"min=0,max=100000"`
}

// DusunSummaryRequest holds the totals of one dusun
type DusunSummaryRequest struct {
	Households int `json:"households" binding:"min=0,max=100000"`
	Male       int `json:"male" binding:"min=0,max=100000"`
	Female     int `json:"female" binding:"min=0,max=100000"`
}

// DemographyHandler serves monografis, infografis and their dashboard editors
type DemographyHandler struct {
	BaseHandler
	demographyService DemographyService
}

// NewDemographyHandler creates a new demography handler
func NewDemographyHandler(demographyService DemographyService) *DemographyHandler {
	return &DemographyHandler{demographyService: demographyService}
}

// Monografis godoc
// @Summary      Village monograph
// @Description  Profile and population per dusun. The profile is null until it has been filled in.
// @Tags         public
// @Produce      json
// @Success      200 {object} dto.Response{data=demographyapp.MonografisResponse}
// @Router       /public/monografis [get]
func (h *DemographyHandler) Monografis(c *gin.Context) {
	m, err := h.demographyService.Monografis(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// MonografisPDF godoc
// @Summary      Village monograph as PDF
// @Tags         public
// @Produce      application/pdf
// @Success      200 {file} file
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/monografis/pdf [get]
func (h *DemographyHandler) MonografisPDF(c *gin.Context) {
	pdf, err := h.demographyService.MonografisPDF(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+monografisPDFName+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Infografis godoc
// @Summary      Village infographic data
// @Tags         public
// @Produce      json
// @Success      200 {object} dto.Response{data=demography.Infografis}
// @Router       /public/infografis [get]
func (h *DemographyHandler) Infografis(c *gin.Context) {
	info, err := h.demographyService.Infografis(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// GetProfile godoc
// @Summary      Get village profile
// @Tags         demography
// @Produce      json
// @Success      200 {object} dto.Response{data=demographyapp.ProfileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demography/profile [get]
func (h *DemographyHandler) GetProfile(c *gin.Context) {
	profile, err := h.demographyService.GetProfile(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile godoc
// @Summary      Create or update village profile
// @Tags         demography
// @Accept       json
// @Produce      json
// @Param        request body ProfileRequest true "Profile"
// @Success      200 {object} dto.Response{data=demographyapp.ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demography/profile [put]
func (h *DemographyHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}
	profile, err := h.demographyService.UpdateProfile(c.Request.Context(), demography.ProfileDetails{
		VillageName:   req.VillageName,
		District:      req.District,
		Regency:       req.Regency,
		Province:      req.Province,
		VillageHead:   req.VillageHead,
		AreaKm2:       req.AreaKm2,
		AltitudeM:     req.AltitudeM,
		BoundaryNorth: req.BoundaryNorth,
		BoundarySouth: req.BoundarySouth,
		BoundaryEast:  req.BoundaryEast,
		BoundaryWest:  req.BoundaryWest,
		PostalCode:    req.PostalCode,
		Description:   req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// ListStats godoc
// @Summary      List population statistics
// @Tags         demography
// @Produce      json
// @Param        category query string false "Category" Enums(age_group, education, occupation, religion, marital_status)
// @Param        dusun query string false "Dusun code or label"
// @Success      200 {object} dto.Response{data=[]demographyapp.StatResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demography/stats [get]
func (h *DemographyHandler) ListStats(c *gin.Context) {
	var req StatListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	stats, err := h.demographyService.ListStats(c.Request.Context(), demographyapp.StatFilter{
		Category: req.Category,
		Dusun:    req.Dusun,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if stats == nil {
		stats = []demographyapp.StatResponse{}
	}
	h.Success(c, stats)
}

// UpsertStat godoc
// @Summary      Write population statistic
// @Description  Creates or replaces the counts of one (category, label, dusun)
// @Tags         demography
// @Accept       json
// @Produce      json
// @Param        request body StatRequest true "Statistic"
// @Success      200 {object} dto.Response{data=demographyapp.StatResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demography/stats [put]
func (h *DemographyHandler) UpsertStat(c *gin.Context) {
	var req StatRequest
	if !h.BindJSON(c, &req) {
		return
	}
	stat, err := h.demographyService.UpsertStat(c.Request.Context(), demographyapp.StatInput{
		Category: req.Category,
		Label:    req.Label,
		Dusun:    req.Dusun,
		Male:     req.Male,
		Female:   req.Female,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stat)
}

// DeleteStat godoc
// @Summary      Delete population statistic
// @Tags         demography
// @Param        id path string true "Statistic ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demography/stats/{id} [delete]
func (h *DemographyHandler) DeleteStat(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.demographyService.DeleteStat(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpsertDusunSummary godoc
// @Summary      Write dusun totals
// @Tags         demography
// @Accept       json
// @Produce      json
// @Param        dusun path string true "Dusun code or label"
// @Param        request body DusunSummaryRequest true "Totals"
// @Success      200 {object} dto.Response{data=demography.DusunRow}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /demography/dusun/{dusun} [put]
func (h *DemographyHandler) UpsertDusunSummary(c *gin.Context) {
	var req DusunSummaryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	row, err := h.demographyService.UpsertDusunSummary(c.Request.Context(), c.Param("dusun"), demographyapp.DusunSummaryInput{
		Households: req.Households,
		Male:       req.Male,
		Female:     req.Female,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}
