package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.Prefix())
	assert.Empty(t, r.groups)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.Prefix())
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("umkm", "/umkm")
	g.GET("", reply("list")).
		POST("", reply("create")).
		PUT("/:id", reply("update")).
		DELETE("/:id", reply("delete"))
	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/api/v1/umkm", "list"},
		{http.MethodPost, "/api/v1/umkm", "create"},
		{http.MethodPut, "/api/v1/umkm/42", "update"},
		{http.MethodDelete, "/api/v1/umkm/42", "delete"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serve(engine, tt.method, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}

	assert.Equal(t, "umkm", g.Name())
	assert.Equal(t, "/umkm", g.Prefix())
}

func TestDomainGroup_MiddlewareScope(t *testing.T) {
	engine := gin.New()
	mark := func(c *gin.Context) {
		c.Header("X-Dashboard", "1")
		c.Next()
	}

	public := NewDomainGroup("public", "/public")
	public.GET("/articles", reply("public"))

	dashboard := NewDomainGroup("dashboard", "").Use(mark)
	dashboard.Group("articles", "/articles").GET("", reply("dashboard"))

	NewRouter(engine).Register(public).Register(dashboard).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/articles")
	assert.Equal(t, "dashboard", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Dashboard"), "subgroups inherit middleware")

	w = serve(engine, http.MethodGet, "/api/v1/public/articles")
	assert.Equal(t, "public", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Dashboard"), "an empty-prefix group does not leak middleware")
}

func TestRouter_Use(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("system", "")
	g.GET("/health", reply("ok"))
	NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "v1")
		c.Next()
	}).Register(g).Setup()
	engine.GET("/health", reply("root"))

	assert.Equal(t, "v1", serve(engine, http.MethodGet, "/api/v1/health").Header().Get("X-Api"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-Api"))
}

func TestRouter_Routes(t *testing.T) {
	r := NewRouter(gin.New())

	public := NewDomainGroup("public", "/public")
	public.GET("/umkm/:id", reply("")).GET("/umkm", reply(""))

	dashboard := NewDomainGroup("dashboard", "")
	writers := dashboard.Group("writers", "/writers")
	writers.POST("", reply("")).GET("", reply(""))
	dashboard.GET("/logs", reply(""))

	r.Register(public).Register(dashboard)

	want := []Route{
		{Group: "dashboard", Method: http.MethodGet, Path: "/api/v1/logs"},
		{Group: "public", Method: http.MethodGet, Path: "/api/v1/public/umkm"},
		{Group: "public", Method: http.MethodGet, Path: "/api/v1/public/umkm/:id"},
		{Group: "writers", Method: http.MethodGet, Path: "/api/v1/writers"},
		{Group: "writers", Method: http.MethodPost, Path: "/api/v1/writers"},
	}
	if diff := cmp.Diff(want, r.Routes()); diff != "" {
		t.Errorf("Routes() mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		base, relative, want string
	}{
		{"/api/v1", "", "/api/v1"},
		{"/api/v1", "/writers", "/api/v1/writers"},
		{"/api/v1/writers", "/:id", "/api/v1/writers/:id"},
		{"/api/v1", "/swagger/", "/api/v1/swagger/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinPath(tt.base, tt.relative))
	}
}
