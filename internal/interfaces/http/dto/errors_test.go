package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodePasswordMismatch, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{"WRITER_HAS_ARTICLES", http.StatusConflict},
		{ErrCodeLastSuperAdmin, http.StatusUnprocessableEntity},
		{"ALREADY_PUBLISHED", http.StatusUnprocessableEntity},
		{ErrCodePredictionUnavailable, http.StatusBadGateway},
		{ErrCodePredictionFailed, http.StatusBadGateway},
		{ErrCodePDFRenderingDisabled, http.StatusServiceUnavailable},
		{ErrCodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Resource specific codes fall back on their suffix
		{"ARTICLE_NOT_FOUND", http.StatusNotFound},
		{"UMKM_ALREADY_EXISTS", http.StatusConflict},
		{"CATEGORY_IN_USE", http.StatusConflict},
		{"INVALID_DUSUN", http.StatusBadRequest},
		{"INVALID_SORT_FIELD", http.StatusBadRequest},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestUnauthorizedCodesAreAll401(t *testing.T) {
	for _, code := range []string{
		ErrCodeUnauthorized,
		ErrCodeInvalidCredentials,
		ErrCodeTokenExpired,
		ErrCodeTokenInvalid,
		ErrCodeTokenRevoked,
		ErrCodeTokenMaxRefresh,
	} {
		assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(code), code)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Data tidak ditemukan")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Data tidak ditemukan", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "name", Message: "name wajib diisi", Tag: "required"},
		{Field: "dusun", Message: "dusun tidak valid", Tag: "dusun"},
	}

	resp := NewValidationErrorResponse("Data tidak valid", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID("WRITER_NOT_FOUND", "Penulis tidak ditemukan", "req-test-123")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "WRITER_NOT_FOUND", errObj["code"])
	assert.Equal(t, "req-test-123", errObj["request_id"])
	assert.NotContains(t, errObj, "details")
}

func TestErrorResponseTimestamp(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse(ErrCodeInternal, "Terjadi kesalahan pada server")
	after := time.Now()

	assert.False(t, resp.Error.Timestamp.Before(before))
	assert.False(t, resp.Error.Timestamp.After(after))
}

func TestNewSuccessResponseWithMetaPagination(t *testing.T) {
	tests := []struct {
		total         int64
		pageSize      int
		expectedPages int
		expectedSize  int
	}{
		{100, 10, 10, 10},
		{101, 10, 11, 10},
		{0, 10, 0, 10},
		{9, 10, 1, 10},
		{100, 0, 5, 20},
		{100, -1, 5, 20},
	}

	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta([]string{}, tt.total, 1, tt.pageSize)
		assert.True(t, resp.Success)
		assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages)
		assert.Equal(t, tt.expectedSize, resp.Meta.PageSize)
	}
}

func TestListRequest_ToQuery(t *testing.T) {
	q := ListRequest{PageSize: 500, Search: "kopi", OrderBy: "name", OrderDir: "asc"}.ToQuery()

	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, "kopi", q.Search)
	assert.Equal(t, "name", q.OrderBy)
	assert.Equal(t, "asc", q.OrderDir)
}
