package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sibiria/internal/config"
	"sibiria/internal/database"
	"sibiria/internal/mailer"
	"sibiria/internal/middleware"
	"sibiria/internal/modules/auth"
	"sibiria/internal/modules/booking"
	"sibiria/internal/modules/catalog"
	"sibiria/internal/modules/payment"
	"sibiria/internal/modules/stats"
	jwtsvc "sibiria/internal/pkg/jwt"
	"sibiria/internal/pkg/metrics"
	"sibiria/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	statRepo := repository.NewStatisticRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		mail = mailer.NewDevConsole()
	}

	gateway := payment.NewClient(cfg.YooKassaBaseURL, cfg.YooKassaShopID, cfg.YooKassaSecretKey)
	hub := booking.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j, mail, cfg.ResetCodeTTL)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, roomTypeRepo, serviceRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, gateway, hub, cfg.StrictTransitions)
	bookingHandler := booking.NewHandler(bookingService, hub)

	statsService := stats.NewService(bookingRepo, roomRepo, statRepo)
	statsHandler := stats.NewHandler(statsService)

	paymentHandler := payment.NewHandler(gateway)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())
	if cfg.MetricsEnabled {
		m := metrics.New("sibiria-api")
		r.Use(middleware.Metrics(m))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		authHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
			statsHandler.RegisterAdminRoutes(admin)
			authHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
