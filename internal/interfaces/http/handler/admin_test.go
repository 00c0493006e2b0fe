package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/application/identity"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAdminRouter(h *AdminHandler, actorID uuid.UUID) *gin.Engine {
	r := gin.New()
	g := r.Group("/admins", asAdmin(actorID))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func TestAdminHandler_List(t *testing.T) {
	svc := new(MockAdminService)
	h := NewAdminHandler(svc)
	active := true

	svc.On("List", mock.Anything, identity.AdminListFilter{
		ListQuery: shared.ListQuery{Page: 2, PageSize: 10, Search: "ops"},
		Role:      "admin",
		IsActive:  &active,
	}).Return([]identity.AdminResponse{{ID: uuid.New(), Username: "ops"}}, int64(11), nil)

	w := performRequest(setupAdminRouter(h, uuid.New()), http.MethodGet,
		"/admins?page=2&page_size=10&search=ops&role=admin&is_active=true", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	svc.AssertExpectations(t)
}

func TestAdminHandler_List_InvalidRole(t *testing.T) {
	svc := new(MockAdminService)
	h := NewAdminHandler(svc)

	w := performRequest(setupAdminRouter(h, uuid.New()), http.MethodGet, "/admins?role=root", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
}

func TestAdminHandler_List_PageSizeOverMax(t *testing.T) {
	h := NewAdminHandler(new(MockAdminService))

	w := performRequest(setupAdminRouter(h, uuid.New()), http.MethodGet, "/admins?page_size=500", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAdminService)
		h := NewAdminHandler(svc)
		input := identity.CreateAdminInput{
			Name:                 "Operator Desa",
			Username:             "operator",
			Email:                "operator@laiyolobaru.desa.id",
			Password:             "rahasia123",
			PasswordConfirmation: "rahasia123",
			Role:                 "admin",
		}
		svc.On("Create", mock.Anything, input).Return(&identity.AdminResponse{ID: uuid.New(), Username: "operator"}, nil)

		w := performRequest(setupAdminRouter(h, uuid.New()), http.MethodPost, "/admins", CreateAdminRequest{
			Name:                 input.Name,
			Username:             input.Username,
			Email:                input.Email,
			Password:             input.Password,
			PasswordConfirmation: input.PasswordConfirmation,
			Role:                 input.Role,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		svc := new(MockAdminService)
		h := NewAdminHandler(svc)

		w := performRequest(setupAdminRouter(h, uuid.New()), http.MethodPost, "/admins", CreateAdminRequest{
			Name:                 "Operator Desa",
			Username:             "operator",
			Email:                "operator@laiyolobaru.desa.id",
			Password:             "rahasia123",
			PasswordConfirmation: "rahasia124",
			Role:                 "admin",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "password_confirmation", resp.Error.Details[0].Field)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := new(MockAdminService)
		h := NewAdminHandler(svc)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("USERNAME_ALREADY_EXISTS", "Username sudah digunakan"))

		w := performRequest(setupAdminRouter(h, uuid.New()), http.MethodPost, "/admins", CreateAdminRequest{
			Name:                 "Operator Desa",
			Username:             "operator",
			Email:                "operator@laiyolobaru.desa.id",
			Password:             "rahasia123",
			PasswordConfirmation: "rahasia123",
			Role:                 "admin",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Username sudah digunakan", decodeResponse(t, w).Error.Message)
	})
}

func TestAdminHandler_Update_PassesActor(t *testing.T) {
	svc := new(MockAdminService)
	h := NewAdminHandler(svc)
	actorID, targetID := uuid.New(), uuid.New()
	inactive := false

	svc.On("Update", mock.Anything, actorID, targetID, identity.UpdateAdminInput{
		Name:     "Operator",
		Email:    "op@laiyolobaru.desa.id",
		Role:     "admin",
		IsActive: &inactive,
	}).Return(nil, shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "Anda tidak dapat menonaktifkan akun sendiri"))

	w := performRequest(setupAdminRouter(h, actorID), http.MethodPut, "/admins/"+targetID.String(), UpdateAdminRequest{
		Name:     "Operator",
		Email:    "op@laiyolobaru.desa.id",
		Role:     "admin",
		IsActive: &inactive,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertExpectations(t)
}

func TestAdminHandler_Delete(t *testing.T) {
	actorID, targetID := uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := new(MockAdminService)
		h := NewAdminHandler(svc)
		svc.On("Delete", mock.Anything, actorID, targetID).Return(nil)

		w := performRequest(setupAdminRouter(h, actorID), http.MethodDelete, "/admins/"+targetID.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("last super admin", func(t *testing.T) {
		svc := new(MockAdminService)
		h := NewAdminHandler(svc)
		svc.On("Delete", mock.Anything, actorID, targetID).
			Return(shared.NewDomainError(dto.ErrCodeLastSuperAdmin, "Super admin terakhir tidak dapat dihapus"))

		w := performRequest(setupAdminRouter(h, actorID), http.MethodDelete, "/admins/"+targetID.String(), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockAdminService)
		h := NewAdminHandler(svc)

		w := performRequest(setupAdminRouter(h, actorID), http.MethodDelete, "/admins/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidID, decodeResponse(t, w).Error.Code)
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
