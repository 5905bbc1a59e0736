package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gymdesk/internal/auth"
	"gymdesk/internal/class"
	"gymdesk/internal/client"
	"gymdesk/internal/config"
	"gymdesk/internal/email"
	"gymdesk/internal/membership"
	"gymdesk/internal/payment"
	"gymdesk/internal/report"
	"gymdesk/internal/trainer"
	"gymdesk/internal/user"
)

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	db          *sqlx.DB
	config      *config.Config
	UserService user.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	clientRepo := client.NewRepository(db)
	clientService := client.NewService(clientRepo)
	clientHandler := client.NewHandler(clientService)

	trainerService := trainer.NewService(trainer.NewRepository(db))
	trainerHandler := trainer.NewHandler(trainerService)

	membershipService := membership.NewService(membership.NewRepository(db), clientRepo, emailService)
	membershipHandler := membership.NewHandler(membershipService)

	classService := class.NewService(class.NewRepository(db), clientRepo, emailService)
	classHandler := class.NewHandler(classService)

	paymentHandler := payment.NewHandler(payment.NewRepository(db))
	reportHandler := report.NewHandler(report.NewRepository(db))

	userService := user.NewService(user.NewRepository(db), cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	public := router.Group("/auth")
	{
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	// Any authenticated staff member: profile, the calendar and class rosters.
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.Me)
		protected.GET("/dashboard", reportHandler.Dashboard)
		protected.GET("/schedule/events", classHandler.Calendar)
		protected.GET("/classes/:classID", classHandler.Get)
		protected.GET("/classes/:classID/registrations", classHandler.ListRegistrations)
	}

	// Attendance is marked at the door, usually by the trainer running the class.
	attendance := router.Group("/registrations")
	attendance.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin, auth.RoleTrainer))
	{
		attendance.PUT("/:registrationID/attendance", classHandler.SetAttendance)
	}

	reports := router.Group("/reports")
	reports.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin, auth.RoleManager))
	{
		reports.GET("/financial", reportHandler.Financial)
		reports.GET("/attendance", reportHandler.Attendance)
		reports.GET("/trainer-load", reportHandler.TrainerLoad)
		reports.GET("/club-load", reportHandler.ClubLoad)
	}

	payments := router.Group("/payments")
	payments.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin, auth.RoleManager))
	{
		payments.POST("", paymentHandler.Record)
		payments.GET("", paymentHandler.List)
	}

	// Read-only rosters for managers.
	rosters := router.Group("/")
	rosters.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin, auth.RoleManager))
	{
		rosters.GET("/clients", clientHandler.List)
		rosters.GET("/trainers", trainerHandler.List)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/staff", userHandler.CreateStaff)
		admin.GET("/staff", userHandler.ListStaff)

		admin.POST("/clients", clientHandler.Create)
		admin.GET("/clients", clientHandler.List)
		admin.GET("/clients/:clientID", clientHandler.Get)
		admin.PUT("/clients/:clientID", clientHandler.Update)
		admin.DELETE("/clients/:clientID", clientHandler.Delete)
		admin.GET("/clients/:clientID/memberships", membershipHandler.ListByClient)

		admin.POST("/trainers", trainerHandler.Create)
		admin.GET("/trainers", trainerHandler.List)
		admin.GET("/trainers/:trainerID", trainerHandler.Get)
		admin.PUT("/trainers/:trainerID", trainerHandler.Update)
		admin.DELETE("/trainers/:trainerID", trainerHandler.Delete)
		admin.POST("/trainers/:trainerID/schedule", trainerHandler.AddScheduleEntry)
		admin.GET("/trainers/:trainerID/schedule", trainerHandler.GetSchedule)
		admin.DELETE("/trainers/:trainerID/schedule/:entryID", trainerHandler.RemoveScheduleEntry)

		admin.POST("/membership-types", membershipHandler.CreateType)
		admin.GET("/membership-types", membershipHandler.ListTypes)
		admin.GET("/membership-types/:typeID", membershipHandler.GetType)
		admin.PUT("/membership-types/:typeID", membershipHandler.UpdateType)
		admin.DELETE("/membership-types/:typeID", membershipHandler.DeleteType)

		admin.POST("/memberships/sell", membershipHandler.Sell)
		admin.GET("/memberships", membershipHandler.ListAll)
		admin.POST("/memberships/:membershipID/freeze", membershipHandler.Freeze)
		admin.GET("/memberships/:membershipID/freezes", membershipHandler.ListFreezes)

		admin.POST("/classes", classHandler.Create)
		admin.PUT("/classes/:classID", classHandler.Update)
		admin.POST("/classes/:classID/reschedule", classHandler.Reschedule)
		admin.DELETE("/classes/:classID", classHandler.Delete)
		admin.POST("/classes/:classID/registrations", classHandler.Register)
		admin.DELETE("/classes/:classID/registrations/:clientID", classHandler.Unregister)

		admin.GET("/test-email", TestEmail(emailService))
	}

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics(emailService))
	SetupSwagger(router)

	return &Server{
		router:      router,
		db:          db,
		config:      cfg,
		UserService: userService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
