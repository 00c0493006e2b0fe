package middleware

import (
	"context"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Pyroscope label names
const (
	ProfilingLabelMethod   = "method"
	ProfilingLabelRoute    = "route"
	ProfilingLabelSurface  = "surface"
	ProfilingLabelResource = "resource"
)

var versionSegment = regexp.MustCompile(`^[vV][0-9]+$`)

// Profiling tags CPU samples taken while serving a request so Pyroscope can
// slice profiles per endpoint. System routes are left untagged.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return func(c *gin.Context) {
		labels, ok := profilingLabels(c)
		if !ok {
			c.Next()
			return
		}
		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) ([]string, bool) {
	route := routePattern(c)
	where := surface(route)
	if where == SurfaceSystem {
		return nil, false
	}
	return []string{
		ProfilingLabelMethod, c.Request.Method,
		ProfilingLabelRoute, route,
		ProfilingLabelSurface, where,
		ProfilingLabelResource, resourceOf(route),
	}, true
}

// resourceOf returns the first static segment that is not the API prefix,
// the version or the public marker: "/api/v1/public/articles/:slug" gives
// "articles"
func resourceOf(route string) string {
	for part := range strings.SplitSeq(route, "/") {
		switch {
		case part == "", part == "api", part == "public", versionSegment.MatchString(part):
		case part[0] == ':', part[0] == '*':
		default:
			return part
		}
	}
	return ""
}
