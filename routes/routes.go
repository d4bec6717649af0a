package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gopet/internal/handlers"
	"gopet/internal/middleware"
	"gopet/internal/observability"
	"gopet/pkg/logger"
)

// Dependencies is everything the router needs. Gatherer may be nil, in
// which case /metrics is not mounted.
type Dependencies struct {
	Logger         *logger.Logger
	Metrics        *observability.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string

	Dashboard *handlers.DashboardHandler
	Drivers   *handlers.DriverHandler
	Rides     *handlers.RideHandler
	Support   *handlers.SupportHandler
	Uploads   *handlers.UploadHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

func SetupRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log, deps.Metrics))
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	if deps.Health != nil {
		router.GET("/health", deps.Health.Health)
	}
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.GET("/dashboard", deps.Dashboard.GetDashboard)
		api.GET("/pets", deps.Dashboard.ListPets)

		drivers := api.Group("/drivers")
		{
			drivers.GET("", deps.Drivers.ListDrivers)
			drivers.POST("", deps.Drivers.CreateDriver)
			drivers.GET("/:id", deps.Drivers.GetDriver)
			drivers.PATCH("/:id/status", deps.Drivers.UpdateStatus)
			drivers.PATCH("/:id/availability", deps.Drivers.UpdateAvailability)
		}

		rides := api.Group("/rides")
		{
			rides.GET("", deps.Rides.ListRides)
			rides.POST("", deps.Rides.CreateRide)
			rides.GET("/:id", deps.Rides.GetRide)
			rides.PATCH("/:id/status", deps.Rides.UpdateStatus)
			rides.POST("/:id/simulate", deps.Rides.Simulate)
			rides.GET("/:id/messages", deps.Rides.ListMessages)
			rides.POST("/:id/messages", deps.Rides.PostMessage)
		}

		incidents := api.Group("/incidents")
		{
			incidents.GET("", deps.Support.ListIncidents)
			incidents.POST("", deps.Support.CreateIncident)
			incidents.PATCH("/:id/status", deps.Support.UpdateIncidentStatus)
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("", deps.Support.ListTickets)
			tickets.PATCH("/:id/status", deps.Support.UpdateTicketStatus)
		}

		uploads := api.Group("/uploads")
		{
			uploads.POST("", deps.Uploads.Upload)
			uploads.GET("/*key", deps.Uploads.Download)
			uploads.DELETE("/*key", deps.Uploads.Delete)
		}

		if deps.WebSocket != nil {
			api.GET("/ws", deps.WebSocket.ServeWs)
		}
	}

	return router
}
