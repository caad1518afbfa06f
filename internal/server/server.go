package server

import (
	"parish-portal-be/internal/bootstrap"
	"parish-portal-be/internal/config"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/pkg/store"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "parish-portal",
		BodyLimit:    store.MaxUploadBytes + 1<<20,
		ErrorHandler: serverutils.NewErrorHandler(container.Logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))
	app.Use(otelfiber.Middleware())
	if !cfg.IsProduction() {
		app.Use(fiberLogger.New())
	}
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("API Working")
	})
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)

	c.CertificateController.RegisterRoutes(api)
	c.MassBookingController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)

	c.AnnouncementController.RegisterRoutes(api)
	c.CalendarEventController.RegisterRoutes(api)

	c.AdminController.RegisterRoutes(api)
}
