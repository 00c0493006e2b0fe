package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/application/identity"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

// AdminListRequest holds the admin list query
type AdminListRequest struct {
	dto.ListRequest
	Role     string `form:"role" binding:"omitempty,oneof=super_admin admin"`
	IsActive *bool  `form:"is_active"`
}

// CreateAdminRequest represents the request body for creating an admin
type CreateAdminRequest struct {
	Name                 string `json:"name" binding:"required,max=100"`
	Username             string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Email                string `json:"email" binding:"required,email,max=100"`
	Password             string `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" binding:"required,oneof=super_admin admin"`
}

// UpdateAdminRequest represents the request body for updating an admin.
// The password is only changed when it is given.
type UpdateAdminRequest struct {
	Name                 string `json:"name" binding:"required,max=100"`
	Email                string `json:"email" binding:"required,email,max=100"`
	Role                 string `json:"role" binding:"required,oneof=super_admin admin"`
	IsActive             *bool  `json:"is_active"`
	Password             string `json:"password" binding:"omitempty,min=8,max=128"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required_with=Password,omitempty,eqfield=Password"`
}

// AdminHandler handles admin management
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// List godoc
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by name, username or email"
// @Param        role query string false "Role" Enums(super_admin, admin)
// @Param        is_active query bool false "Active flag"
// @Success      200 {object} dto.Response{data=[]identity.AdminResponse,meta=dto.Meta}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	var req AdminListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	query := req.ToQuery()

	admins, total, err := h.adminService.List(c.Request.Context(), identity.AdminListFilter{
		ListQuery: query,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, admins, total, query)
}

// Get godoc
// @Summary      Get admin
// @Tags         admins
// @Produce      json
// @Param        id path string true "Admin ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AdminResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admins/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	admin, err := h.adminService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admin)
}

// Create godoc
// @Summary      Create admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        request body CreateAdminRequest true "Admin"
// @Success      201 {object} dto.Response{data=identity.AdminResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admins [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req CreateAdminRequest
	if !h.BindJSON(c, &req) {
		return
	}
	admin, err := h.adminService.Create(c.Request.Context(), identity.CreateAdminInput{
		Name:                 req.Name,
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, admin)
}

// Update godoc
// @Summary      Update admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        id path string true "Admin ID" format(uuid)
// @Param        request body UpdateAdminRequest true "Admin"
// @Success      200 {object} dto.Response{data=identity.AdminResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admins/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	actorID, ok := h.CurrentAdminID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req UpdateAdminRequest
	if !h.BindJSON(c, &req) {
		return
	}
	admin, err := h.adminService.Update(c.Request.Context(), actorID, id, identity.UpdateAdminInput{
		Name:                 req.Name,
		Email:                req.Email,
		Role:                 req.Role,
		IsActive:             req.IsActive,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admin)
}

// Delete godoc
// @Summary      Delete admin
// @Tags         admins
// @Param        id path string true "Admin ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admins/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	actorID, ok := h.CurrentAdminID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.adminService.Delete(c.Request.Context(), actorID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
