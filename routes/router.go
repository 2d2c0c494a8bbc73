package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter builds the engine from initializers.Cfg.
func SetupRouter() *gin.Engine {
	cfg := initializers.Cfg

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	withFrontend := frontendAvailable(cfg.FrontendDir)
	if withFrontend {
		if len(cfg.BasicAuthUsers) == 0 {
			zap.S().Error("FRONTEND_DIR is set but BASIC_AUTH_USERS is empty, frontend requests will be refused")
		}
		server.Use(middlewares.FrontendAuth(cfg.BasicAuthUsers))
	}

	server.Static("/images", cfg.ImagesDir)

	api := server.Group("/api")
	DefaultRoutes(server, api, withFrontend)
	AuthRoutes(api)
	ProductRoutes(api)
	OrderRoutes(api)
	AdminRoutes(api)

	server.NoRoute(notFound(cfg.FrontendDir, withFrontend))
	return server
}

func frontendAvailable(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, "index.html"))
	return err == nil && !info.IsDir()
}

// notFound serves bundle files and falls back to index.html for client-side routes.
// Misses under /api and /images stay JSON 404s.
func notFound(dir string, withFrontend bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if !withFrontend || middlewares.IsAPIPath(path) ||
			(ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
			return
		}

		file := filepath.Join(dir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			ctx.File(file)
			return
		}
		ctx.File(filepath.Join(dir, "index.html"))
	}
}
