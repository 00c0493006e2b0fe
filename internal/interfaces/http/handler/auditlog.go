package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// AuditLogListRequest holds the audit log query. Dates are YYYY-MM-DD or RFC3339.
type AuditLogListRequest struct {
	dto.ListRequest
	Action  string `form:"action"`
	Entity  string `form:"entity" binding:"max=50"`
	ActorID string `form:"actor_id" binding:"omitempty,uuid"`
	From    string `form:"from"`
	To      string `form:"to"`
}

// parseDate parses a query date. A plain date used as upper bound covers the whole day.
func parseDate(value string, endOfDay bool) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

// AuditLogHandler serves the audit trail
type AuditLogHandler struct {
	BaseHandler
	logService AuditLogService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logService AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{logService: logService}
}

// List godoc
// @Summary      List audit logs
// @Description  Newest first unless another order is requested
// @Tags         logs
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search in description and actor name"
// @Param        order_by query string false "Sort field" Enums(created_at, action, entity, actor_name)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        action query string false "Action" Enums(create, update, delete, login, logout, publish, unpublish)
// @Param        entity query string false "Entity"
// @Param        actor_id query string false "Admin ID" format(uuid)
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD), inclusive"
// @Success      200 {object} dto.Response{data=[]auditapp.LogResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /logs [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	var req AuditLogListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	from, okFrom := parseDate(req.From, false)
	to, okTo := parseDate(req.To, true)
	if !okFrom || !okTo {
		h.Error(c, http.StatusBadRequest, "INVALID_DATE", "Format tanggal harus YYYY-MM-DD")
		return
	}

	query := req.ToQuery()
	filter := auditapp.ListFilter{
		ListQuery: query,
		Action:    req.Action,
		Entity:    req.Entity,
		From:      from,
		To:        to,
	}
	if id, err := uuid.Parse(req.ActorID); err == nil {
		filter.ActorID = &id
	}

	logs, total, err := h.logService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, logs, total, query)
}
