package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rafidhan/tripnesia/config"
	"github.com/rafidhan/tripnesia/internal/handlers"
	"github.com/rafidhan/tripnesia/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	midtransCfg, err := config.LoadMidtransConfig()
	if err != nil {
		return fmt.Errorf("failed to load midtrans config: %v", err)
	}
	snapClient := config.InitSnapClient(midtransCfg)

	ossCfg, err := config.LoadOSSConfig()
	if err != nil {
		return fmt.Errorf("failed to load oss config: %v", err)
	}
	objectStorage, err := config.InitObjectStorage(ossCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %v", err)
	}

	r := gin.Default()

	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.MidtransMiddleware(snapClient, midtransCfg.ServerKey))
	r.Use(middleware.StorageMiddleware(objectStorage))

	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine) {
	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		packagePublic := public.Group("/packages")
		{
			packagePublic.GET("", handlers.ListPackages)
			packagePublic.GET("/:id", handlers.GetPackage)
		}

		schedulePublic := public.Group("/schedules")
		{
			schedulePublic.GET("", handlers.ListSchedules)
			schedulePublic.GET("/:id", handlers.GetSchedule)
		}

		paymentPublic := public.Group("/payments")
		{
			paymentPublic.POST("/callback", handlers.PaymentCallback)
			paymentPublic.POST("/notification", handlers.MidtransNotification)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)

		bookingProtected := protected.Group("/bookings")
		{
			bookingProtected.POST("", handlers.CreateBooking)
			bookingProtected.GET("/:id", handlers.GetBooking)
		}

		paymentProtected := protected.Group("/payments")
		{
			paymentProtected.POST("/:id/token", handlers.IssueSnapToken)
		}
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		bookingAdmin := admin.Group("/bookings")
		{
			bookingAdmin.GET("", handlers.ListBookings)
			bookingAdmin.PUT("/:id/status", handlers.UpdateBookingStatus)
			bookingAdmin.DELETE("/:id", handlers.DeleteBooking)
			bookingAdmin.POST("/batch-delete", handlers.BatchDeleteBookings)
		}

		paymentAdmin := admin.Group("/payments")
		{
			paymentAdmin.GET("", handlers.ListPayments)
			paymentAdmin.POST("/:id/verify", handlers.VerifyPayment)
			paymentAdmin.POST("/:id/reject", handlers.RejectPayment)
			paymentAdmin.POST("/:id/invoice", handlers.CaptureInvoice)
			paymentAdmin.DELETE("/:id", handlers.DeletePayment)
		}

		packageAdmin := admin.Group("/packages")
		{
			packageAdmin.POST("", handlers.CreatePackage)
			packageAdmin.PUT("/:id", handlers.UpdatePackage)
			packageAdmin.DELETE("/:id", handlers.DeletePackage)
		}

		scheduleAdmin := admin.Group("/schedules")
		{
			scheduleAdmin.POST("", handlers.CreateSchedule)
			scheduleAdmin.PUT("/:id", handlers.UpdateSchedule)
			scheduleAdmin.DELETE("/:id", handlers.DeleteSchedule)
		}
	}
}
