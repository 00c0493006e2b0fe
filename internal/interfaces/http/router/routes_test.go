package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abortWith(status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatus(status)
	}
}

func testHandlers() Handlers {
	return Handlers{
		Auth:       handler.NewAuthHandler(nil),
		Admin:      handler.NewAdminHandler(nil),
		Writer:     handler.NewWriterHandler(nil),
		Article:    handler.NewArticleHandler(nil),
		UMKM:       handler.NewUMKMHandler(nil),
		Travel:     handler.NewTravelHandler(nil, nil),
		AuditLog:   handler.NewAuditLogHandler(nil),
		Demography: handler.NewDemographyHandler(nil),
		Stunting:   handler.NewStuntingHandler(nil),
		Upload:     handler.NewUploadHandler(nil),
		System:     handler.NewSystemHandler("desa-laiyolo-baru", "test"),
	}
}

func setupAPI(g Guards) *gin.Engine {
	engine := gin.New()
	r := NewRouter(engine)
	RegisterAPI(r, testHandlers(), g)
	r.Setup()
	return engine
}

func TestRegisterAPI_RouteTable(t *testing.T) {
	engine := setupAPI(Guards{Auth: abortWith(http.StatusUnauthorized), SuperAdmin: abortWith(http.StatusForbidden)})

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"PUT /api/v1/auth/password",
		"GET /api/v1/admins",
		"POST /api/v1/admins",
		"GET /api/v1/admins/:id",
		"PUT /api/v1/admins/:id",
		"DELETE /api/v1/admins/:id",
		"GET /api/v1/public/writers",
		"GET /api/v1/writers",
		"DELETE /api/v1/writers/:id",
		"GET /api/v1/public/articles",
		"GET /api/v1/public/articles/:slug",
		"POST /api/v1/articles/:id/publish",
		"POST /api/v1/articles/:id/unpublish",
		"GET /api/v1/public/umkm",
		"GET /api/v1/public/umkm/dusun-count",
		"GET /api/v1/public/umkm/:id",
		"PUT /api/v1/umkm/:id",
		"GET /api/v1/public/travel-categories",
		"POST /api/v1/travel-categories",
		"GET /api/v1/public/travels/:id",
		"POST /api/v1/travels",
		"GET /api/v1/logs",
		"GET /api/v1/public/monografis",
		"GET /api/v1/public/monografis/pdf",
		"GET /api/v1/public/infografis",
		"GET /api/v1/demography/profile",
		"PUT /api/v1/demography/profile",
		"GET /api/v1/demography/stats",
		"PUT /api/v1/demography/stats",
		"DELETE /api/v1/demography/stats/:id",
		"PUT /api/v1/demography/dusun/:dusun",
		"POST /api/v1/public/stunting/predict",
		"POST /api/v1/uploads",
		"GET /api/v1/health",
		"GET /api/v1/system/info",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestRegisterAPI_Guards(t *testing.T) {
	engine := setupAPI(Guards{
		Auth:         abortWith(http.StatusUnauthorized),
		SuperAdmin:   abortWith(http.StatusForbidden),
		PredictLimit: abortWith(http.StatusTooManyRequests),
	})

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"dashboard list needs a token", "GET", "/api/v1/articles", http.StatusUnauthorized},
		{"upload needs a token", "POST", "/api/v1/uploads", http.StatusUnauthorized},
		{"session routes need a token", "GET", "/api/v1/auth/me", http.StatusUnauthorized},
		{"demography needs a token", "PUT", "/api/v1/demography/stats", http.StatusUnauthorized},
		{"admins check the token first", "GET", "/api/v1/admins", http.StatusUnauthorized},
		{"prediction is throttled", "POST", "/api/v1/public/stunting/predict", http.StatusTooManyRequests},
		{"health is public", "GET", "/api/v1/health", http.StatusOK},
		{"system info is public", "GET", "/api/v1/system/info", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRegisterAPI_SuperAdminGuard(t *testing.T) {
	pass := func(c *gin.Context) { c.Next() }
	engine := setupAPI(Guards{Auth: pass, SuperAdmin: abortWith(http.StatusForbidden)})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/admins/abc", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterAPI_PredictWithoutLimiter(t *testing.T) {
	engine := setupAPI(Guards{Auth: abortWith(http.StatusUnauthorized), SuperAdmin: abortWith(http.StatusForbidden)})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/public/stunting/predict", nil))

	// Reaches the handler, which rejects the empty body
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterAPI_LoginLimit(t *testing.T) {
	engine := setupAPI(Guards{
		Auth:       abortWith(http.StatusUnauthorized),
		SuperAdmin: abortWith(http.StatusForbidden),
		LoginLimit: abortWith(http.StatusTooManyRequests),
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Refresh is not throttled
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/auth/refresh", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
