package main

import (
	"runtime/debug"

	"salesproject-backend/clients"
	"salesproject-backend/config"
	"salesproject-backend/controllers"
	"salesproject-backend/database"
	"salesproject-backend/logger"
	"salesproject-backend/metrics"
	"salesproject-backend/middlewares"
	"salesproject-backend/repositories"
	"salesproject-backend/routes"
	"salesproject-backend/services"
	"salesproject-backend/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogPretty)
	middlewares.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	// ---- Database
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		zlog.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal().Err(err).Msg("migration")
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminRoles); err != nil {
		zlog.Fatal().Err(err).Msg("seed admin")
	}

	app := newApp(cfg, db, clients.NewCEPClient(cfg.CEPBaseURL, cfg.CEPTimeout))

	// ---- Start
	zlog.Info().Str("port", cfg.Port).Msg("API server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal().Err(err).Msg("listen")
	}
}

// newApp builds the fiber app with its middleware stack and every route wired.
func newApp(cfg config.Config, db *gorm.DB, cep clients.CEPLookup) *fiber.App {
	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
		Views:        views.Engine(),
	})

	app.Use(requestid.New())
	app.Use(middlewares.RequestLogger())
	app.Use(metrics.Middleware())
	// Inside the logger and metrics so a recovered panic is logged and counted as a 500.
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			zlog.Error().
				Interface("panic", e).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("recovered panic")
		},
	}))

	// ---- CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	// ---- Wiring
	customerRepo := repositories.NewCustomerRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	userRepo := repositories.NewUserRepository(db)

	customerSvc := services.NewCustomerService(customerRepo, cep)
	orderSvc := services.NewOrderService(orderRepo, customerRepo)
	projectSvc := services.NewProjectService(db, projectRepo, taskRepo)
	authSvc := services.NewAuthService(services.NewDBAuthenticator(userRepo), middlewares.GenerateJWT, userRepo)

	attrs := controllers.PageAttrs{Username: cfg.ViewUsername, AvatarURL: cfg.ViewAvatarURL}

	// ---- Routes
	routes.Register(app, routes.Deps{
		DB:        db,
		Auth:      controllers.NewAuthController(authSvc),
		Customers: controllers.NewCustomerController(customerSvc, attrs),
		Orders:    controllers.NewOrderController(orderSvc, attrs),
		Projects:  controllers.NewProjectController(projectSvc),
	})
	return app
}
