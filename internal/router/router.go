package router

import (
	"net/http"
	"time"

	"github.com/devroute/bootcamp-backend/internal/config"
	"github.com/devroute/bootcamp-backend/internal/handler"
	"github.com/devroute/bootcamp-backend/internal/middleware"
	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/response"
	"github.com/devroute/bootcamp-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	StudentExam *handler.StudentExamHandler
	Exam        *handler.ExamHandler
	Deployment  *handler.DeploymentHandler
	Cohort      *handler.CohortHandler
	Media       *handler.MediaHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request tracing travels on the X-Request-ID header.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Exam Session Group (JWT) ───────────────────────────────────
	// Role checks run inside the handlers after the deployment is
	// resolved, so a staff token probing a deployment still sees 404
	// before 403.
	exams := router.Group("/api/v1/exams")
	exams.Use(middleware.RequireAuth(authService))
	{
		exams.POST("/deployments/:id/check_code", handlers.StudentExam.CheckCode)
		exams.GET("/deployments/:id", handlers.StudentExam.Take)
		exams.POST("/deployments/:id/cheating", handlers.StudentExam.ReportViolation)
		exams.POST("/submissions", handlers.StudentExam.Submit)
		exams.GET("/submissions/:id", handlers.StudentExam.GetSubmission)
	}

	// ─── 3. Staff Group (JWT + Role) ───────────────────────────────────
	staff := router.Group("/api/v1/staff")
	staff.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleStaff),
	)
	{
		staff.GET("/exams", handlers.Exam.List)
		staff.POST("/exams", handlers.Exam.Create)
		staff.GET("/exams/:id", handlers.Exam.Get)
		staff.DELETE("/exams/:id", handlers.Exam.Delete)
		staff.GET("/exams/:id/questions", handlers.Exam.ListQuestions)
		staff.PUT("/exams/:id/questions", handlers.Exam.ReplaceQuestions)
		staff.GET("/exams/:id/deployments", handlers.Deployment.ListByExam)

		staff.POST("/deployments", handlers.Deployment.Create)
		staff.GET("/deployments/:id", handlers.Deployment.Get)
		staff.PATCH("/deployments/:id/status", handlers.Deployment.UpdateStatus)
		staff.DELETE("/deployments/:id", handlers.Deployment.Delete)
		staff.GET("/deployments/:id/results", handlers.Deployment.ListResults)

		staff.GET("/cohorts", handlers.Cohort.List)
		staff.POST("/cohorts", handlers.Cohort.Create)
		staff.GET("/cohorts/:id", handlers.Cohort.Get)
		staff.PUT("/cohorts/:id", handlers.Cohort.Update)
		staff.DELETE("/cohorts/:id", handlers.Cohort.Delete)
		staff.GET("/cohorts/:id/students", handlers.Cohort.ListStudents)

		staff.POST("/media/upload", handlers.Media.UploadMedia)
	}

	return router
}
