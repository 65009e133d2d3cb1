package routes

import (
	"time"

	"tripplanner/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPageRoutes registers the server-rendered planner page.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.ShowFormHandler)
	r.POST("/itinerary", hb.SubmitFormHandler)
	r.GET("/itinerary/download", hb.DownloadHandler)
}

// RegisterAPIRoutes registers the JSON endpoints. Archive endpoints are only
// present when the archive is wired.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/itinerary", hb.CreateItineraryHandler)

		if hb.ArchiveEnabled {
			api.GET("/itineraries", hb.ListItinerariesHandler)
			api.GET("/itineraries/:id/download", hb.DownloadArchivedHandler)
		}
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterPageRoutes(r, hb)
	RegisterAPIRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
