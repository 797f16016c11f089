package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/config"
	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/internal/services"
	"github.com/labrecord/backend/internal/storage"
	"github.com/labrecord/backend/pkg/utils"
)

// NewApp builds the full HTTP application. The server binary and the
// test harness share this so routes never drift between the two.
func NewApp(db *gorm.DB, cfg *config.Config, store storage.ImageStore) *fiber.App {
	// the body limit sits well above the upload cap so size violations
	// get the handler's error message instead of a bare 413
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Uploads.MaxSizeBytes) * 4,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return utils.Error(c, code, err.Error())
		},
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.CORSOrigin))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	auth := middleware.NewAuthMiddleware(db)

	ldapService := services.NewLDAPService(cfg)
	authService := services.NewAuthService(repository.NewUsers(db), ldapService)
	sessionService := services.NewSessionService(db)

	authHandler := NewAuthHandler(authService, sessionService)
	recordHandler := NewLabRecordHandler(db)
	sectionHandler := NewSectionHandler(db)
	imageHandler := NewSectionImageHandler(db, store, cfg.Uploads.MaxSizeBytes)
	preferencesHandler := NewPreferencesHandler(db)
	exportHandler := NewExportHandler(db)
	uploadsHandler := NewUploadsHandler(store)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	})

	app.Get("/uploads/:filename", uploadsHandler.Serve)

	api := app.Group("/api")

	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/user", auth.RequireAuth, authHandler.Me)

	records := api.Group("/lab-records", auth.RequireAuth)
	records.Get("/", recordHandler.List)
	records.Post("/", recordHandler.Create)
	records.Get("/:id", recordHandler.Get)
	records.Patch("/:id", recordHandler.Update)
	records.Delete("/:id", recordHandler.Delete)
	records.Post("/:id/duplicate", recordHandler.Duplicate)
	records.Get("/:id/sections", sectionHandler.List)
	records.Post("/:id/sections", sectionHandler.Create)
	records.Post("/:id/sections/reorder", sectionHandler.Reorder)
	records.Get("/:id/preview", exportHandler.Preview)
	records.Get("/:id/export", exportHandler.Export)

	sections := api.Group("/sections", auth.RequireAuth)
	sections.Patch("/:id", sectionHandler.Update)
	sections.Delete("/:id", sectionHandler.Delete)
	sections.Get("/:id/images", imageHandler.List)
	sections.Post("/:id/images", imageHandler.Upload)

	api.Delete("/section-images/:id", auth.RequireAuth, imageHandler.Delete)

	api.Get("/user/preferences", auth.RequireAuth, preferencesHandler.Get)
	api.Patch("/user/preferences", auth.RequireAuth, preferencesHandler.Update)

	return app
}
