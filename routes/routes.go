package routes

import (
	"context"
	"time"

	"jamaluki-backend/config"
	"jamaluki-backend/controllers"
	"jamaluki-backend/services"
	"jamaluki-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	Services             *services.Services
	JWTSecret            string
	CORSOrigins          []string
	SlowRequestThreshold time.Duration
	// DBPing backs the health check.
	DBPing func(ctx context.Context) error
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", config.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", config.RequestIDHeader},
		AllowCredentials: true,
	}))

	threshold := opts.SlowRequestThreshold
	if threshold <= 0 {
		threshold = 200 * time.Millisecond
	}
	r.Use(config.RequestLogger(threshold))

	svc := opts.Services
	authController := controllers.AuthController{Auth: svc.Auth}
	salonController := controllers.SalonController{Salons: svc.Salons}
	serviceController := controllers.ServiceController{Catalog: svc.Catalog}
	offerController := controllers.OfferController{Offers: svc.Offers}
	appointmentController := controllers.AppointmentController{Appointments: svc.Appointments}
	reviewController := controllers.ReviewController{Reviews: svc.Reviews}
	dashboardController := controllers.DashboardController{Dashboard: svc.Dashboard}
	healthController := controllers.HealthController{Ping: opts.DBPing}

	api := r.Group("/api")
	api.GET("/health", healthController.Check)

	// Mounted ahead of the middleware so a stale token cookie cannot block
	// signing in again.
	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)
	api.POST("/logout", authController.Logout)

	// Every route below sees the caller; the services decide what an
	// anonymous caller may do.
	api.Use(utils.AuthMiddleware(opts.JWTSecret))
	{
		api.GET("/user", authController.Me)
		api.PATCH("/user", authController.UpdateProfile)

		salons := api.Group("/salons")
		{
			salons.GET("", salonController.GetSalons)
			salons.POST("", salonController.CreateSalon)
			salons.GET("/:id", salonController.GetSalon)
			salons.PATCH("/:id", salonController.UpdateSalon)
			salons.GET("/:id/services", serviceController.GetSalonServices)
			salons.GET("/:id/special-offers", offerController.GetSalonSpecialOffers)
			salons.GET("/:id/reviews", reviewController.GetSalonReviews)
		}

		api.GET("/service-categories", serviceController.GetServiceCategories)

		serviceRoutes := api.Group("/services")
		{
			serviceRoutes.POST("", serviceController.CreateService)
			serviceRoutes.PATCH("/:id", serviceController.UpdateService)
			serviceRoutes.DELETE("/:id", serviceController.DeleteService)
		}

		offers := api.Group("/special-offers")
		{
			offers.GET("", offerController.GetSpecialOffers)
			offers.POST("", offerController.CreateSpecialOffer)
			offers.PATCH("/:id", offerController.UpdateSpecialOffer)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentController.GetAppointments)
			appointments.POST("", appointmentController.CreateAppointment)
			appointments.GET("/:id", appointmentController.GetAppointment)
			appointments.PATCH("/:id/status", appointmentController.UpdateAppointmentStatus)
		}

		api.POST("/reviews", reviewController.CreateReview)
		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	return r
}
