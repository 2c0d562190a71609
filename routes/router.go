package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillapi/quill/config"
	"github.com/quillapi/quill/controllers"
	"github.com/quillapi/quill/middleware"
	"github.com/quillapi/quill/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Aggregate blog reads per day and path
	r.Use(middleware.PageViewRecorder(db))

	r.GET("/", func(ctx *gin.Context) {
		utils.Success(ctx, "Welcome to Quill Blogging API", gin.H{
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":  "/api/auth",
				"blogs": "/api/blogs",
			},
		})
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, "", gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	blogController := controllers.NewBlogController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/signin", authController.Signin)
	authGroup.POST("/signout", middleware.AuthRequired(), authController.Signout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	blogsGroup := api.Group("/blogs")
	blogsGroup.GET("", blogController.ListBlogs)
	blogsGroup.GET("/:id", blogController.GetBlog)

	protected := blogsGroup.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("", blogController.CreateBlog)
	protected.GET("/user/my-blogs", blogController.ListMyBlogs)
	protected.PATCH("/:id", blogController.UpdateBlog)
	protected.DELETE("/:id", blogController.DeleteBlog)

	// Public stats endpoint
	api.GET("/stats", statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
