package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babithbhoop/sparklespace/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "sparkle-server",
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	photoHandler := handler.NewPhotoHandler(deps)
	settingsHandler := handler.NewSettingsHandler(deps)
	syncHandler := handler.NewSyncHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/:job_id", jobHandler.GetJob)
			jobs.PUT("/:job_id", jobHandler.UpdateJob)
			jobs.DELETE("/:job_id", jobHandler.DeleteJob)

			// Workflow actions: send-estimate, approve-estimate,
			// send-schedule, reopen-schedule, confirm-schedule,
			// start-timer, stop-timer, invoice, pay.
			jobs.POST("/:job_id/actions/:action", jobHandler.Action)

			jobs.PUT("/:job_id/actual-hours", jobHandler.SetActualHours)
			jobs.POST("/:job_id/feedback", jobHandler.SaveFeedback)
			jobs.GET("/:job_id/calendar.ics", jobHandler.Calendar)

			jobs.POST("/:job_id/spaces/:space_id/photos", photoHandler.AddPhoto)
			jobs.DELETE("/:job_id/spaces/:space_id/photos/:photo_id", photoHandler.DeletePhoto)
		}

		v1.GET("/stats", jobHandler.Stats)

		v1.GET("/settings", settingsHandler.GetSettings)
		v1.PUT("/settings", settingsHandler.UpdateSettings)

		syncGroup := v1.Group("/sync")
		{
			syncGroup.GET("/status", syncHandler.Status)
			syncGroup.POST("/force", syncHandler.Force)
			syncGroup.POST("/test-connection", syncHandler.TestConnection)
			syncGroup.PUT("/credentials", syncHandler.UpdateCredentials)
			syncGroup.DELETE("/credentials", syncHandler.ClearCredentials)
			syncGroup.GET("/drive-folder", syncHandler.GetDriveFolder)
			syncGroup.PUT("/drive-folder", syncHandler.SetDriveFolder)
		}
	}

	return r
}
