package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	articleapp "github.com/laiyolobaru/backend/internal/application/article"
	travelapp "github.com/laiyolobaru/backend/internal/application/travel"
	umkmapp "github.com/laiyolobaru/backend/internal/application/umkm"
	writerapp "github.com/laiyolobaru/backend/internal/application/writer"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func defaultQuery() shared.ListQuery {
	return shared.ListQuery{Page: dto.DefaultPage, PageSize: dto.DefaultPageSize}
}

func TestWriterHandler(t *testing.T) {
	setup := func(svc *MockWriterService) *gin.Engine {
		h := NewWriterHandler(svc)
		r := gin.New()
		r.GET("/public/writers", h.List)
		g := r.Group("/writers", asAdmin(uuid.New()))
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		return r
	}

	t.Run("list filters by dusun label", func(t *testing.T) {
		svc := new(MockWriterService)
		q := defaultQuery()
		q.Search = "ahmad"
		svc.On("List", mock.Anything, writerapp.ListFilter{ListQuery: q, Dusun: "Dusun II"}).
			Return([]writerapp.Response{}, int64(0), nil)

		w := performRequest(setup(svc), http.MethodGet, "/public/writers?search=ahmad&dusun=Dusun%20II", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
		svc.AssertExpectations(t)
	})

	t.Run("list rejects unknown dusun", func(t *testing.T) {
		svc := new(MockWriterService)

		w := performRequest(setup(svc), http.MethodGet, "/public/writers?dusun=dusun_9", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "dusun", resp.Error.Details[0].Field)
	})

	t.Run("create duplicate name in dusun", func(t *testing.T) {
		svc := new(MockWriterService)
		svc.On("Create", mock.Anything, writerapp.Input{Name: "Ahmad", Dusun: "dusun_1", Position: "Kaur Umum"}).
			Return(nil, shared.NewDomainError("WRITER_ALREADY_EXISTS", "Penulis dengan nama ini sudah ada di dusun tersebut"))

		w := performRequest(setup(svc), http.MethodPost, "/writers",
			WriterRequest{Name: "Ahmad", Dusun: "dusun_1", Position: "Kaur Umum"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "WRITER_ALREADY_EXISTS", decodeResponse(t, w).Error.Code)
	})

	t.Run("get missing is 404", func(t *testing.T) {
		svc := new(MockWriterService)
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, shared.NewDomainError("WRITER_NOT_FOUND", "Penulis tidak ditemukan"))

		w := performRequest(setup(svc), http.MethodGet, "/writers/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete writer with articles is 409", func(t *testing.T) {
		svc := new(MockWriterService)
		id := uuid.New()
		svc.On("Delete", mock.Anything, id).Return(shared.NewDomainError("WRITER_HAS_ARTICLES", "Penulis masih memiliki artikel"))

		w := performRequest(setup(svc), http.MethodDelete, "/writers/"+id.String(), nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestArticleHandler(t *testing.T) {
	setup := func(svc *MockArticleService) *gin.Engine {
		h := NewArticleHandler(svc)
		r := gin.New()
		r.GET("/public/articles", h.ListPublished)
		r.GET("/public/articles/:slug", h.GetBySlug)
		g := r.Group("/articles", asAdmin(uuid.New()))
		g.GET("", h.List)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.POST("/:id/publish", h.Publish)
		g.POST("/:id/unpublish", h.Unpublish)
		return r
	}

	t.Run("dashboard list passes status and writer", func(t *testing.T) {
		svc := new(MockArticleService)
		writerID := uuid.New()
		q := defaultQuery()
		q.OrderBy, q.OrderDir = "published_at", "desc"
		svc.On("List", mock.Anything, articleapp.ListFilter{ListQuery: q, Status: "draft", WriterID: &writerID}).
			Return([]articleapp.Response{{ID: uuid.New(), Title: "Musyawarah Desa"}}, int64(1), nil)

		w := performRequest(setup(svc), http.MethodGet,
			"/articles?status=draft&writer_id="+writerID.String()+"&order_by=published_at&order_dir=desc", nil)

		require.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid order_dir", func(t *testing.T) {
		w := performRequest(setup(new(MockArticleService)), http.MethodGet, "/articles?order_dir=sideways", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid sort field from service is 400", func(t *testing.T) {
		svc := new(MockArticleService)
		svc.On("ListPublished", mock.Anything, mock.Anything).
			Return(nil, int64(0), shared.NewDomainError("INVALID_SORT_FIELD", "Kolom pengurutan tidak valid"))

		w := performRequest(setup(svc), http.MethodGet, "/public/articles?order_by=password", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_SORT_FIELD", decodeResponse(t, w).Error.Code)
	})

	t.Run("public read by slug", func(t *testing.T) {
		svc := new(MockArticleService)
		svc.On("GetPublishedBySlug", mock.Anything, "panen-raya-2026").
			Return(&articleapp.Response{Slug: "panen-raya-2026", Status: "published"}, nil)

		w := performRequest(setup(svc), http.MethodGet, "/public/articles/panen-raya-2026", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("create requires writer", func(t *testing.T) {
		svc := new(MockArticleService)

		w := performRequest(setup(svc), http.MethodPost, "/articles", map[string]any{
			"title":   "Musyawarah Desa",
			"content": "<p>Isi</p>",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "writer_id", resp.Error.Details[0].Field)
	})

	t.Run("create and publish", func(t *testing.T) {
		svc := new(MockArticleService)
		writerID := uuid.New()
		svc.On("Create", mock.Anything, articleapp.Input{
			Title:    "Musyawarah Desa",
			Content:  "<p>Isi</p>",
			WriterID: writerID,
			Publish:  true,
		}).Return(&articleapp.Response{ID: uuid.New(), Status: "published"}, nil)

		w := performRequest(setup(svc), http.MethodPost, "/articles", ArticleRequest{
			Title:    "Musyawarah Desa",
			Content:  "<p>Isi</p>",
			WriterID: writerID,
			Publish:  true,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("publish twice is 422", func(t *testing.T) {
		svc := new(MockArticleService)
		id := uuid.New()
		svc.On("Publish", mock.Anything, id).Return(nil, shared.NewDomainError("ALREADY_PUBLISHED", "Artikel sudah dipublikasikan"))

		w := performRequest(setup(svc), http.MethodPost, "/articles/"+id.String()+"/publish", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unpublish", func(t *testing.T) {
		svc := new(MockArticleService)
		id := uuid.New()
		svc.On("Unpublish", mock.Anything, id).Return(&articleapp.Response{ID: id, Status: "draft"}, nil)

		w := performRequest(setup(svc), http.MethodPost, "/articles/"+id.String()+"/unpublish", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUMKMHandler(t *testing.T) {
	setup := func(svc *MockUMKMService) *gin.Engine {
		h := NewUMKMHandler(svc)
		r := gin.New()
		r.GET("/public/umkm", h.List)
		r.GET("/public/umkm/dusun-count", h.CountByDusun)
		r.GET("/public/umkm/:id", h.Get)
		g := r.Group("/umkm", asAdmin(uuid.New()))
		g.POST("", h.Create)
		g.DELETE("/:id", h.Delete)
		return r
	}

	t.Run("list filters", func(t *testing.T) {
		svc := new(MockUMKMService)
		svc.On("List", mock.Anything, umkmapp.ListFilter{ListQuery: defaultQuery(), Dusun: "dusun_3", Category: "kuliner"}).
			Return(nil, int64(0), nil)

		w := performRequest(setup(svc), http.MethodGet, "/public/umkm?dusun=dusun_3&category=kuliner", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
		svc.AssertExpectations(t)
	})

	t.Run("count by dusun", func(t *testing.T) {
		svc := new(MockUMKMService)
		svc.On("CountByDusun", mock.Anything).Return([]umkmapp.DusunCount{
			{Dusun: "dusun_1", Label: "Dusun I", Total: 4},
			{Dusun: "dusun_2", Label: "Dusun II", Total: 0},
		}, nil)

		w := performRequest(setup(svc), http.MethodGet, "/public/umkm/dusun-count", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"label":"Dusun I"`)
	})

	t.Run("create with prices", func(t *testing.T) {
		svc := new(MockUMKMService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in umkmapp.Input) bool {
			return in.Name == "Kue Karasi" && in.PriceMin != nil && in.PriceMin.Equal(decimal.NewFromInt(5000)) &&
				in.PriceMax != nil && in.PriceMax.Equal(decimal.NewFromInt(25000))
		})).Return(&umkmapp.Response{ID: uuid.New()}, nil)

		w := performRequest(setup(svc), http.MethodPost, "/umkm", map[string]any{
			"name":       "Kue Karasi",
			"owner_name": "Ibu Rahma",
			"dusun":      "Dusun I",
			"category":   "kuliner",
			"price_min":  5000,
			"price_max":  "25000",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("create rejects unknown category", func(t *testing.T) {
		w := performRequest(setup(new(MockUMKMService)), http.MethodPost, "/umkm", map[string]any{
			"name":       "Tambang",
			"owner_name": "X",
			"dusun":      "dusun_1",
			"category":   "tambang",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get missing is 404", func(t *testing.T) {
		svc := new(MockUMKMService)
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := performRequest(setup(svc), http.MethodGet, "/public/umkm/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTravelHandler(t *testing.T) {
	setup := func(svc *MockTravelService, cats *MockTravelCategoryService) *gin.Engine {
		h := NewTravelHandler(svc, cats)
		r := gin.New()
		r.GET("/public/travels", h.List)
		r.GET("/public/travel-categories", h.ListCategories)
		g := r.Group("", asAdmin(uuid.New()))
		g.POST("/travels", h.Create)
		g.POST("/travel-categories", h.CreateCategory)
		g.PUT("/travel-categories/:id", h.UpdateCategory)
		g.DELETE("/travel-categories/:id", h.DeleteCategory)
		return r
	}

	t.Run("list by category", func(t *testing.T) {
		svc := new(MockTravelService)
		categoryID := uuid.New()
		svc.On("List", mock.Anything, travelapp.ListFilter{ListQuery: defaultQuery(), CategoryID: &categoryID}).
			Return([]travelapp.Response{{ID: uuid.New(), Name: "Pantai Laiyolo", IsFree: true}}, int64(1), nil)

		w := performRequest(setup(svc, new(MockTravelCategoryService)), http.MethodGet,
			"/public/travels?category_id="+categoryID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("create destination", func(t *testing.T) {
		svc := new(MockTravelService)
		categoryID := uuid.New()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in travelapp.Input) bool {
			return in.CategoryID == categoryID && in.TicketPrice.Equal(decimal.NewFromInt(10000)) &&
				len(in.Facilities) == 2
		})).Return(&travelapp.Response{ID: uuid.New()}, nil)

		w := performRequest(setup(svc, new(MockTravelCategoryService)), http.MethodPost, "/travels", map[string]any{
			"name":         "Pantai Laiyolo",
			"category_id":  categoryID.String(),
			"dusun":        "dusun_4",
			"ticket_price": 10000,
			"facilities":   []string{"Gazebo", "Toilet"},
			"latitude":     -6.25,
			"longitude":    120.45,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("create rejects bad latitude", func(t *testing.T) {
		w := performRequest(setup(new(MockTravelService), new(MockTravelCategoryService)), http.MethodPost, "/travels", map[string]any{
			"name":        "Pantai",
			"category_id": uuid.NewString(),
			"dusun":       "dusun_4",
			"latitude":    123.0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list categories", func(t *testing.T) {
		cats := new(MockTravelCategoryService)
		cats.On("List", mock.Anything, defaultQuery()).
			Return([]travelapp.CategoryResponse{{Name: "Wisata Bahari", Slug: "wisata-bahari"}}, int64(1), nil)

		w := performRequest(setup(new(MockTravelService), cats), http.MethodGet, "/public/travel-categories", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "wisata-bahari")
	})

	t.Run("delete category in use", func(t *testing.T) {
		cats := new(MockTravelCategoryService)
		id := uuid.New()
		cats.On("Delete", mock.Anything, id).Return(shared.NewDomainError("CATEGORY_IN_USE", "Kategori masih digunakan"))

		w := performRequest(setup(new(MockTravelService), cats), http.MethodDelete, "/travel-categories/"+id.String(), nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("update category", func(t *testing.T) {
		cats := new(MockTravelCategoryService)
		id := uuid.New()
		cats.On("Update", mock.Anything, id, travelapp.CategoryInput{Name: "Wisata Alam"}).
			Return(&travelapp.CategoryResponse{ID: id, Name: "Wisata Alam"}, nil)

		w := performRequest(setup(new(MockTravelService), cats), http.MethodPut, "/travel-categories/"+id.String(),
			TravelCategoryRequest{Name: "Wisata Alam"})

		assert.Equal(t, http.StatusOK, w.Code)
		cats.AssertExpectations(t)
	})
}
