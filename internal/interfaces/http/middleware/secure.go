package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityConfig holds the security response headers. Empty values are not sent.
type SecurityConfig struct {
	// HSTSMaxAge enables Strict-Transport-Security when positive.
	// Only set it behind HTTPS.
	HSTSMaxAge            time.Duration
	HSTSIncludeSubdomains bool

	ContentSecurityPolicy string
	PermissionsPolicy     string
	ReferrerPolicy        string
}

// DefaultSecurityConfig suits a JSON API that also serves the Swagger UI
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: https:; font-src 'self' data:; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		PermissionsPolicy: "camera=(), geolocation=(), microphone=(), payment=(), usb=()",
		ReferrerPolicy:    "strict-origin-when-cross-origin",
	}
}

// Secure uses DefaultSecurityConfig
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds the security headers of cfg to every response
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	headers := [][2]string{
		{"X-Frame-Options", "DENY"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-XSS-Protection", "1; mode=block"},
	}
	optional := [][2]string{
		{"Referrer-Policy", cfg.ReferrerPolicy},
		{"Content-Security-Policy", cfg.ContentSecurityPolicy},
		{"Permissions-Policy", cfg.PermissionsPolicy},
	}
	if cfg.HSTSMaxAge > 0 {
		hsts := "max-age=" + strconv.FormatInt(int64(cfg.HSTSMaxAge/time.Second), 10)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		optional = append(optional, [2]string{"Strict-Transport-Security", hsts})
	}
	for _, h := range optional {
		if h[1] != "" {
			headers = append(headers, h)
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range headers {
			h.Set(kv[0], kv[1])
		}
		c.Next()
	}
}
