package api

import (
	"crypto/rand"
	"log"
	stdhttp "net/http"

	intconfig "busreservation/internal/config"
	h "busreservation/internal/http/handlers"
	"busreservation/internal/http/middleware"
	"busreservation/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, ledger *services.Ledger) *gin.Engine {
	secret := []byte(env.JWTSecret)
	if len(secret) == 0 {
		secret = randomSecret()
		log.Printf("warning: JWT_SECRET not set, admin tokens are valid for this process only")
	}

	handlers := h.New(ledger, h.AuthConfig{
		Secret:            secret,
		AdminUsername:     env.AdminUsername,
		AdminPasswordHash: env.AdminPasswordHash,
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", handlers.Login)

		buses := api.Group("/buses")
		buses.GET("", handlers.ListBuses)
		buses.GET("/search", handlers.SearchBuses)
		buses.GET("/:id", handlers.GetBus)

		bookings := api.Group("/bookings")
		bookings.GET("", handlers.ListBookings)
		bookings.POST("", handlers.CreateBooking)
		bookings.GET("/:id", handlers.GetBooking)
		bookings.POST("/:id/cancel", handlers.CancelBooking)
		bookings.GET("/:id/e-ticket", handlers.GetBookingETicket)

		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth(secret), middleware.RequireRoles("admin"))
		reports.GET("/revenue", handlers.GetRevenueReport)
		reports.GET("/occupancy", handlers.GetOccupancyReport)
	}

	h.SetRouter(r)
	return r
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("failed to generate JWT secret: %v", err)
	}
	return b
}
