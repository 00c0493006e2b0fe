package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	articleapp "github.com/laiyolobaru/backend/internal/application/article"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

// ArticleListRequest holds the article list query
type ArticleListRequest struct {
	dto.ListRequest
	Status   string `form:"status" binding:"omitempty,oneof=draft published"`
	WriterID string `form:"writer_id" binding:"omitempty,uuid"`
}

func (r ArticleListRequest) toFilter() articleapp.ListFilter {
	filter := articleapp.ListFilter{
		ListQuery: r.ToQuery(),
		Status:    r.Status,
	}
	if id, err := uuid.Parse(r.WriterID); err == nil {
		filter.WriterID = &id
	}
	return filter
}

// ArticleRequest represents the request body for creating or updating an article
type ArticleRequest struct {
	Title         string    `json:"title" binding:"required,max=200"`
	Excerpt       string    `json:"excerpt" binding:"max=500"`
	Content       string    `json:"content" binding:"required"`
	CoverImageURL string    `json:"cover_image_url" binding:"omitempty,url,max=500"`
	WriterID      uuid.UUID `json:"writer_id" binding:"required"`
	Publish       bool      `json:"publish"`
}

func (r ArticleRequest) toInput() articleapp.Input {
	return articleapp.Input{
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		CoverImageURL: r.CoverImageURL,
		WriterID:      r.WriterID,
		Publish:       r.Publish,
	}
}

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	BaseHandler
	articleService ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List godoc
// @Summary      List articles
// @Description  Dashboard list including drafts
// @Tags         articles
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by title or excerpt"
// @Param        order_by query string false "Sort field" Enums(title, created_at, published_at, view_count)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        status query string false "Status" Enums(draft, published)
// @Param        writer_id query string false "Writer ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]articleapp.Response,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	var req ArticleListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	filter := req.toFilter()

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, articles, total, filter.ListQuery)
}

// ListPublished godoc
// @Summary      List published articles
// @Tags         public
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by title or excerpt"
// @Param        writer_id query string false "Writer ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]articleapp.Response,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/articles [get]
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	var req ArticleListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	filter := req.toFilter()

	articles, total, err := h.articleService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(&h.BaseHandler, c, articles, total, filter.ListQuery)
}

// GetBySlug godoc
// @Summary      Read a published article
// @Description  Counts a view
// @Tags         public
// @Produce      json
// @Param        slug path string true "Article slug"
// @Success      200 {object} dto.Response{data=articleapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/articles/{slug} [get]
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	a, err := h.articleService.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Get godoc
// @Summary      Get article
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=articleapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	a, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Create godoc
// @Summary      Create article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request body ArticleRequest true "Article"
// @Success      201 {object} dto.Response{data=articleapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req ArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	a, err := h.articleService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, a)
}

// Update godoc
// @Summary      Update article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Param        request body ArticleRequest true "Article"
// @Success      200 {object} dto.Response{data=articleapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req ArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	a, err := h.articleService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Delete godoc
// @Summary      Delete article
// @Tags         articles
// @Param        id path string true "Article ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Publish godoc
// @Summary      Publish article
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=articleapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id}/publish [post]
func (h *ArticleHandler) Publish(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	a, err := h.articleService.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Unpublish godoc
// @Summary      Unpublish article
// @Description  Moves the article back to draft
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=articleapp.Response}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /articles/{id}/unpublish [post]
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	a, err := h.articleService.Unpublish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}
