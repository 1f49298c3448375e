package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/class"
	"gymdesk/internal/config"
	"gymdesk/internal/email"
	"gymdesk/internal/membership"
	"gymdesk/internal/payment"
	"gymdesk/internal/person"
	"gymdesk/internal/plan"
	"gymdesk/internal/reservation"
	"gymdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	revocation := auth.NewRevocationStore(rdb)
	notifier := email.NewNotifier(emailService, person.NewRepository(db))

	userHandler := user.NewHandler(db, cfg.JWTSecret, revocation)
	personHandler := person.NewHandler(db)
	planHandler := plan.NewHandler(db)
	membershipHandler := membership.NewHandler(db)
	classHandler := class.NewHandler(db)
	paymentHandler := payment.NewHandler(db)

	reservationService := reservation.NewService(
		reservation.NewRepository(db),
		class.NewRepository(db),
		membership.NewRepository(db),
		notifier,
	)
	reservationHandler := reservation.NewHandler(reservationService)

	router.POST("/login", RateLimitMiddleware(cfg.LoginRateRPS, cfg.LoginRateBurst), userHandler.Login)

	authMiddleware := auth.Middleware(cfg.JWTSecret, revocation)

	authed := router.Group("/")
	authed.Use(authMiddleware)
	{
		authed.POST("/logout", userHandler.Logout)
		authed.GET("/user", userHandler.GetUser)
		authed.GET("/perfil", personHandler.Profile)

		authed.GET("/clases-disponibles", classHandler.AvailableSlots)
		authed.GET("/reservas", reservationHandler.List)
		authed.POST("/reservas", reservationHandler.Create)
		authed.DELETE("/reservas/:id", reservationHandler.Cancel)
		authed.GET("/asistencias", reservationHandler.ListAsistencias)

		authed.GET("/pagos", paymentHandler.List)
		authed.GET("/pagos/:id/comprobante", paymentHandler.Comprobante)
	}

	// Reception desk operations: staff and owners.
	staff := router.Group("/")
	staff.Use(authMiddleware, auth.RequireRole(auth.RoleOwner, auth.RoleStaff))
	{
		staff.GET("/socios", personHandler.List)
		staff.GET("/socios/:id", personHandler.Get)
		staff.POST("/socios", personHandler.Create)
		staff.PUT("/socios/:id", personHandler.Update)
		staff.DELETE("/socios/:id", personHandler.Delete)
		staff.POST("/socios/:id/create-user", personHandler.CreateUser)

		staff.GET("/servicios", planHandler.List)
		staff.GET("/clases", classHandler.List)

		staff.GET("/membresias", membershipHandler.List)
		staff.POST("/membresias", membershipHandler.Create)
		staff.PUT("/membresias/:id", membershipHandler.Update)
		staff.DELETE("/membresias/:id", membershipHandler.Delete)

		staff.POST("/asistencias", reservationHandler.MarcarAsistencia)

		staff.POST("/pagos", paymentHandler.Create)
		staff.PUT("/pagos/:id", paymentHandler.Update)
	}

	// Catalog mutations are owner only.
	owner := router.Group("/")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		owner.POST("/servicios", planHandler.Create)
		owner.PUT("/servicios/:id", planHandler.Update)
		owner.DELETE("/servicios/:id", planHandler.Delete)

		owner.POST("/clases", classHandler.Create)
		owner.PUT("/clases/:id", classHandler.Update)
		owner.DELETE("/clases/:id", classHandler.Delete)
	}

	router.GET("/health", Health(db, rdb))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
