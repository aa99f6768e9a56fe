package api

import (
	"fmt"
	"log"
	"net/http"

	"atelier/internal/cache"
	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/handlers"
	"atelier/internal/messaging"
	"atelier/internal/metrics"
	"atelier/internal/middleware"
	"atelier/internal/repository"
	"atelier/internal/search"
	"atelier/internal/service"

	"github.com/gin-gonic/gin"
)

// Server is the academy HTTP API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer builds a fully wired server instance
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	// Cache and search are accelerators: the API degrades to Postgres
	// when either is unavailable.
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		log.Printf("Valkey unavailable, running without cache: %v", err)
		valkeyClient = nil
	}

	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		log.Printf("Elasticsearch unavailable, running without search: %v", err)
		esClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, valkeyClient, esClient)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(metrics.HTTPMiddleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes registers all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	// Public endpoints: events catalog and contact form
	public := s.router.Group("/api")
	{
		public.GET("/events", h.ListEvents)
		public.GET("/events/:id", h.GetEvent)
		public.POST("/contact", h.CreateContact)
	}

	// Staff endpoints: validator console and admin surfaces
	staff := s.router.Group("/api")
	staff.Use(middleware.StaffAuth(s.repos.Staff))
	{
		staff.POST("/validate", h.ValidateCode)
		staff.POST("/events", h.CreateEvent)

		bookings := staff.Group("/bookings")
		{
			bookings.GET("", h.ListBookings)
			bookings.GET("/:code", h.GetBooking)
		}

		attendance := staff.Group("/attendance")
		{
			attendance.GET("", h.ListAttendance)
			attendance.GET("/stats", h.AttendanceStats)
		}

		staff.GET("/contacts", h.ListContacts)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", metrics.Handler())
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "atelier-api",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes open connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			log.Printf("Error closing Valkey connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}
