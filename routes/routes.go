package routes

import (
	"net/http"
	"path/filepath"

	"tradehub/config"
	"tradehub/middleware"
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Room for five files at the upload cap plus multipart overhead.
const bodyLimit = 60 << 20

type Deps struct {
	Config       *config.Config
	Brands       *services.BrandService
	Categories   *services.CategoryService
	Units        *services.UnitService
	Counts       *services.CountsService
	Logistics    *services.LogisticsService
	Requirements *services.RequirementService
	Uploads      *services.UploadService

	// Socket transports are optional so tests can run without them.
	SocketIO  http.Handler
	WebSocket http.HandlerFunc
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    bodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: d.Config.CORSOrigins}))

	if d.Config.Storage.Driver == "local" {
		app.Static("/uploads", filepath.Join(d.Config.Storage.LocalRoot, "uploads"))
	}

	SetupRoutes(app, d)
	return app
}

func SetupRoutes(app *fiber.App, d Deps) {
	if d.WebSocket != nil {
		app.Get("/ws", adaptor.HTTPHandlerFunc(d.WebSocket))
	}
	if d.SocketIO != nil {
		app.All("/socket.io/*", adaptor.HTTPHandler(d.SocketIO))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := middleware.Protected(d.Config.JWTSecret)

	admin := app.Group("/admin", auth, middleware.RequireRole(middleware.RoleAdmin, middleware.RoleSuperAdmin))
	brandRoutes(admin.Group("/brands"), d.Brands)
	categoryRoutes(admin.Group("/categories"), d.Categories)
	unitRoutes(admin.Group("/units"), d.Units)
	countRoutes(admin.Group("/counts"), d.Counts)
	admin.Patch("/requirements/:id/review", reviewRequirement(d.Requirements))

	app.Get("/categories", categoryTree(d.Categories))

	logisticsRoutes(app.Group("/logistics", auth), d.Logistics)
	requirementRoutes(app.Group("/requirements"), auth, d.Requirements)
	uploadRoutes(app.Group("/upload"), auth, d.Uploads)
}
