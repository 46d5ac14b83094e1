package router

import (
	"github.com/cuongbtq/interniq-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware(deps.AllowedOrigins))

	// Health check endpoint
	r.GET("/health", handler.Health(deps.Logger, deps.DBClient))

	authHandler := handler.NewAuthHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	resumeHandler := handler.NewResumeHandler(deps)
	companyHandler := handler.NewCompanyHandler(deps)
	activityHandler := handler.NewActivityHandler(deps)

	requireAuth := AuthMiddleware(deps.Identity, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
			auth.POST("/logout", requireAuth, authHandler.Logout)
		}

		jobs := v1.Group("/jobs")
		{
			// GET /api/v1/jobs - List postings with filters and sorting
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/v1/jobs/:id - Get posting details
			jobs.GET("/:id", jobHandler.GetJob)

			// POST /api/v1/jobs - Create a posting (admin)
			jobs.POST("", requireAuth, RequireAdmin(deps.Logger), jobHandler.CreateJob)
		}

		applications := v1.Group("/applications", requireAuth)
		{
			applications.POST("", applicationHandler.Apply)
			applications.GET("", applicationHandler.ListApplications)
			applications.GET("/summary", applicationHandler.Summary)
			applications.PATCH("/:id", applicationHandler.UpdateStatus)
		}

		resume := v1.Group("/resume", requireAuth)
		{
			resume.POST("/upload", resumeHandler.Upload)
			resume.GET("", resumeHandler.Current)
			resume.GET("/history", resumeHandler.History)
		}

		companies := v1.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.GET("/:name", companyHandler.GetCompany)
		}

		v1.GET("/activity", requireAuth, activityHandler.ListActivity)
	}

	return r
}
