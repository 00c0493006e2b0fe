package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

// SwaggerConfig guards the API documentation
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // dashboard token required
	AllowedIPs  []string // addresses or CIDRs; empty allows everyone
}

// SwaggerProtection answers 404 while the documentation is disabled, then
// applies the IP allow list and, when RequireAuth is set, jwtMiddleware.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	allowed := parsePrefixes(cfg.AllowedIPs)
	restricted := len(cfg.AllowedIPs) > 0

	return func(c *gin.Context) {
		switch {
		case !cfg.Enabled:
			abortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound, "Dokumentasi API tidak tersedia")
			return
		case restricted && !containsAddr(allowed, clientAddr(c)):
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Akses dokumentasi API dibatasi")
			return
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			if jwtMiddleware(c); c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}

// parsePrefixes turns addresses into single-address prefixes and skips
// entries that parse as neither
func parsePrefixes(entries []string) []netip.Prefix {
	var out []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if p, err := netip.ParsePrefix(entry); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			out = append(out, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return out
}

// clientAddr uses gin's proxy-aware ClientIP, then RemoteAddr
func clientAddr(c *gin.Context) netip.Addr {
	if a, err := netip.ParseAddr(c.ClientIP()); err == nil {
		return a.Unmap()
	}
	if ap, err := netip.ParseAddrPort(c.Request.RemoteAddr); err == nil {
		return ap.Addr().Unmap()
	}
	return netip.Addr{}
}

func containsAddr(prefixes []netip.Prefix, a netip.Addr) bool {
	if !a.IsValid() {
		return false
	}
	for _, p := range prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
