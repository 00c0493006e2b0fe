package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/infrastructure/logger"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
	"github.com/laiyolobaru/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// setJWTContext marks the request as made by adminID, as JWTAuth would
func setJWTContext(c *gin.Context, adminID uuid.UUID) {
	c.Set(middleware.JWTUserIDKey, adminID.String())
}

// testContext returns a gin context for a GET / request and its recorder
func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name          string
		ctxID, header string
		wantRequestID string
	}{
		{"gin context", "ctx-request-id", "", "ctx-request-id"},
		{"header fallback", "", "header-request-id", "header-request-id"},
		{"context wins", "ctx-id", "header-id", "ctx-id"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext()
			if tt.ctxID != "" {
				c.Set(middleware.RequestIDKey, tt.ctxID)
			}
			if tt.header != "" {
				c.Request.Header.Set(middleware.RequestIDHeader, tt.header)
			}
			assert.Equal(t, tt.wantRequestID, getRequestID(c))
		})
	}
}

func TestBaseHandler_SuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	c, w := testContext()
	h.Success(c, gin.H{"key": "value"})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	c, w = testContext()
	h.Created(c, gin.H{"id": "123"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)

	c, w = testContext()
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestList(t *testing.T) {
	h := &BaseHandler{}

	c, w := testContext()
	List(h, c, []string{"a", "b"}, 45, shared.ListQuery{Page: 2, PageSize: 20})
	meta := decodeResponse(t, w).Meta
	require.NotNil(t, meta)
	assert.Equal(t, dto.Meta{Total: 45, Page: 2, PageSize: 20, TotalPages: 3}, *meta)

	c, w = testContext()
	var none []string
	List(h, c, none, 0, shared.ListQuery{Page: 1, PageSize: 20})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestBaseHandler_ErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		call     func(*BaseHandler, *gin.Context)
		status   int
		wantCode string
	}{
		{"bad request", func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"not found", func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"unauthorized", func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "login") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"internal", func(h *BaseHandler, c *gin.Context) { h.InternalError(c) }, http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext()
			c.Set(middleware.RequestIDKey, "req-42")

			tt.call(&BaseHandler{}, c)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-42", resp.Error.RequestID)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestHandleError_DomainErrors(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		wantCode string
	}{
		{shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{shared.NewDomainError("ARTICLE_NOT_FOUND", "Artikel tidak ditemukan"), http.StatusNotFound, "ARTICLE_NOT_FOUND"},
		{shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{shared.NewDomainError("WRITER_ALREADY_EXISTS", "Penulis sudah ada"), http.StatusConflict, "WRITER_ALREADY_EXISTS"},
		{shared.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{shared.ErrInvalidDusun, http.StatusBadRequest, "INVALID_DUSUN"},
		{shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden},
		{shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{shared.ErrInUse, http.StatusConflict, dto.ErrCodeInUse},
		{shared.NewDomainError(dto.ErrCodePredictionUnavailable, "down"), http.StatusBadGateway, dto.ErrCodePredictionUnavailable},
		{fmt.Errorf("update writer: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c, w := testContext()
			(&BaseHandler{}).HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_UnexpectedErrorIsLoggedNotLeaked(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	c, w := testContext()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), zap.New(core)))

	(&BaseHandler{}).HandleError(c, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection reset")
	assert.Equal(t, 1, logs.FilterMessage("Unhandled request error").Len())
	assert.Len(t, c.Errors, 1)

	c, w = testContext()
	(&BaseHandler{}).HandleError(c, nil)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_ParamID(t *testing.T) {
	h := &BaseHandler{}
	id := uuid.New()

	c, _ := testContext()
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := h.ParamID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c, w := testContext()
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = h.ParamID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidID, decodeResponse(t, w).Error.Code)
}

func TestBaseHandler_CurrentAdminID(t *testing.T) {
	h := &BaseHandler{}
	id := uuid.New()

	c, _ := testContext()
	setJWTContext(c, id)
	got, ok := h.CurrentAdminID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c, w := testContext()
	_, ok = h.CurrentAdminID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
