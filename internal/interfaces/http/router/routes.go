package router

import (
	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers mounted under the API prefix
type Handlers struct {
	Auth       *handler.AuthHandler
	Admin      *handler.AdminHandler
	Writer     *handler.WriterHandler
	Article    *handler.ArticleHandler
	UMKM       *handler.UMKMHandler
	Travel     *handler.TravelHandler
	AuditLog   *handler.AuditLogHandler
	Demography *handler.DemographyHandler
	Stunting   *handler.StuntingHandler
	Upload     *handler.UploadHandler
	System     *handler.SystemHandler
}

// Guards are the middleware placed in front of protected routes
type Guards struct {
	// Auth validates the dashboard access token
	Auth gin.HandlerFunc
	// SuperAdmin restricts admin management
	SuperAdmin gin.HandlerFunc
	// LoginLimit throttles login attempts. Optional.
	LoginLimit gin.HandlerFunc
	// PredictLimit throttles the stunting proxy. Optional.
	PredictLimit gin.HandlerFunc
}

// guarded prepends guard to h when guard is set
func guarded(guard, h gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{guard, h}
}

// RegisterAPI registers the public site and dashboard route groups on r
func RegisterAPI(r *Router, h Handlers, g Guards) {
	r.Register(publicRoutes(h, g)).
		Register(authRoutes(h, g)).
		Register(adminRoutes(h, g)).
		Register(contentRoutes(h, g)).
		Register(demographyRoutes(h, g)).
		Register(systemRoutes(h))
}

func publicRoutes(h Handlers, g Guards) *DomainGroup {
	public := NewDomainGroup("public", "/public")

	public.GET("/writers", h.Writer.List)

	public.GET("/articles", h.Article.ListPublished)
	public.GET("/articles/:slug", h.Article.GetBySlug)

	public.GET("/umkm", h.UMKM.List)
	public.GET("/umkm/dusun-count", h.UMKM.CountByDusun)
	public.GET("/umkm/:id", h.UMKM.Get)

	public.GET("/travel-categories", h.Travel.ListCategories)
	public.GET("/travels", h.Travel.List)
	public.GET("/travels/:id", h.Travel.Get)

	public.GET("/monografis", h.Demography.Monografis)
	public.GET("/monografis/pdf", h.Demography.MonografisPDF)
	public.GET("/infografis", h.Demography.Infografis)

	public.POST("/stunting/predict", guarded(g.PredictLimit, h.Stunting.Predict)...)
	return public
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", guarded(g.LoginLimit, h.Auth.Login)...)
	auth.POST("/refresh", h.Auth.RefreshToken)

	session := auth.Group("session", "").Use(g.Auth)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.GetCurrentAdmin)
	session.PUT("/password", h.Auth.ChangePassword)
	return auth
}

func adminRoutes(h Handlers, g Guards) *DomainGroup {
	admins := NewDomainGroup("admins", "/admins").Use(g.Auth, g.SuperAdmin)
	admins.GET("", h.Admin.List)
	admins.POST("", h.Admin.Create)
	admins.GET("/:id", h.Admin.Get)
	admins.PUT("/:id", h.Admin.Update)
	admins.DELETE("/:id", h.Admin.Delete)
	return admins
}

// contentRoutes covers the dashboard CRUD screens, uploads and the audit log
func contentRoutes(h Handlers, g Guards) *DomainGroup {
	dashboard := NewDomainGroup("dashboard", "").Use(g.Auth)

	writers := dashboard.Group("writers", "/writers")
	writers.GET("", h.Writer.List)
	writers.POST("", h.Writer.Create)
	writers.GET("/:id", h.Writer.Get)
	writers.PUT("/:id", h.Writer.Update)
	writers.DELETE("/:id", h.Writer.Delete)

	articles := dashboard.Group("articles", "/articles")
	articles.GET("", h.Article.List)
	articles.POST("", h.Article.Create)
	articles.GET("/:id", h.Article.Get)
	articles.PUT("/:id", h.Article.Update)
	articles.DELETE("/:id", h.Article.Delete)
	articles.POST("/:id/publish", h.Article.Publish)
	articles.POST("/:id/unpublish", h.Article.Unpublish)

	umkm := dashboard.Group("umkm", "/umkm")
	umkm.GET("", h.UMKM.List)
	umkm.POST("", h.UMKM.Create)
	umkm.GET("/:id", h.UMKM.Get)
	umkm.PUT("/:id", h.UMKM.Update)
	umkm.DELETE("/:id", h.UMKM.Delete)

	categories := dashboard.Group("travel-categories", "/travel-categories")
	categories.GET("", h.Travel.ListCategories)
	categories.POST("", h.Travel.CreateCategory)
	categories.GET("/:id", h.Travel.GetCategory)
	categories.PUT("/:id", h.Travel.UpdateCategory)
	categories.DELETE("/:id", h.Travel.DeleteCategory)

	travels := dashboard.Group("travels", "/travels")
	travels.GET("", h.Travel.List)
	travels.POST("", h.Travel.Create)
	travels.GET("/:id", h.Travel.Get)
	travels.PUT("/:id", h.Travel.Update)
	travels.DELETE("/:id", h.Travel.Delete)

	dashboard.GET("/logs", h.AuditLog.List)
	dashboard.POST("/uploads", h.Upload.Upload)
	return dashboard
}

func demographyRoutes(h Handlers, g Guards) *DomainGroup {
	demography := NewDomainGroup("demography", "/demography").Use(g.Auth)
	demography.GET("/profile", h.Demography.GetProfile)
	demography.PUT("/profile", h.Demography.UpdateProfile)
	demography.GET("/stats", h.Demography.ListStats)
	demography.PUT("/stats", h.Demography.UpsertStat)
	demography.DELETE("/stats/:id", h.Demography.DeleteStat)
	demography.PUT("/dusun/:dusun", h.Demography.UpsertDusunSummary)
	return demography
}

func systemRoutes(h Handlers) *DomainGroup {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)
	return system
}
