package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
	"github.com/CamiloTriana75/ProyectoElden/internal/availability"
	"github.com/CamiloTriana75/ProyectoElden/internal/booking"
	"github.com/CamiloTriana75/ProyectoElden/internal/config"
	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
	"github.com/CamiloTriana75/ProyectoElden/internal/review"
	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

// Handlers groups the HTTP surfaces mounted by the server.
type Handlers struct {
	Facility     *facility.Handler
	Slot         *slot.Handler
	Availability *availability.Handler
	Booking      *booking.Handler
	Reservation  *reservation.Handler
	Review       *review.Handler
	Checks       map[string]Check
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	router.GET("/health", Health)
	router.GET("/ready", Ready(h.Checks))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware, RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		protected.GET("/facilities", h.Facility.ListFacilities)
		protected.GET("/facilities/:facilityID", h.Facility.GetFacility)
		protected.GET("/facilities/:facilityID/availability", h.Availability.GetAvailability)
		protected.POST("/reservations", h.Booking.CreateReservation)
		protected.GET("/reservations/me", h.Reservation.ListMine)
		protected.GET("/reservations/:id", h.Reservation.Get)
		protected.POST("/reservations/:id/cancel", h.Reservation.Cancel)
	}

	staff := router.Group("/staff")
	staff.Use(authMiddleware, auth.RequireRole(auth.RoleEmployee, auth.RoleAdmin))
	{
		staff.GET("/reservations", h.Reservation.List)
		staff.PATCH("/reservations/:id/status", h.Reservation.UpdateStatus)
		staff.GET("/facilities/:facilityID/diagnostics", h.Availability.GetDiagnostics)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/facilities", h.Facility.CreateFacility)
		admin.POST("/facilities/:facilityID/slots", h.Slot.CreateSlot)
		admin.GET("/facilities/:facilityID/slots", h.Slot.ListSlots)
		admin.PATCH("/slots/:slotID", h.Slot.UpdateSlot)
		admin.DELETE("/slots/:slotID", h.Slot.DeleteSlot)
		admin.DELETE("/reservations/:id", h.Reservation.Delete)
		admin.GET("/inconsistencies", h.Review.List)
	}

	return &Server{
		router: router,
		config: cfg,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
