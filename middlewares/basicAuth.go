package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const frontendRealm = "Agent Orders"

// FrontendAuth gates everything outside /api and /images behind HTTP Basic auth.
// With no accounts configured every frontend request is refused.
func FrontendAuth(accounts map[string]string) gin.HandlerFunc {
	basic := refuseAll
	if len(accounts) > 0 {
		basic = gin.BasicAuthForRealm(gin.Accounts(accounts), frontendRealm)
	}
	return func(ctx *gin.Context) {
		if IsAPIPath(ctx.Request.URL.Path) {
			ctx.Next()
			return
		}
		basic(ctx)
	}
}

func refuseAll(ctx *gin.Context) {
	ctx.Header("WWW-Authenticate", `Basic realm="`+frontendRealm+`"`)
	ctx.AbortWithStatus(http.StatusUnauthorized)
}

// IsAPIPath reports whether path is served by the API or the image store rather
// than the frontend bundle.
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/") ||
		path == "/images" || strings.HasPrefix(path, "/images/")
}
