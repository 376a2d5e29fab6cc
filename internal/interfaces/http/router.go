package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-pactra/internal/application/importer"
	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	"github.com/jhoicas/inventario-pactra/internal/application/packing"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements *inventory.MovementUseCase
	Views     *inventory.ViewUseCase
	Import    *importer.ImportUseCase
	Packing   *packing.PackingUseCase
	Log       *logger.Logger
}

// AppConfig opciones del servidor.
type AppConfig struct {
	Name        string
	BodyLimitMB int
	StaticDir   string // interfaz web; vacío = no se sirve
	SwaggerFile string // se monta /docs solo si el archivo existe
}

// NewApp crea la aplicación fiber con middlewares, /health, Swagger y las rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 50
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 120, // la conversión con soffice puede tardar
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))
	app.Use(cors.New())

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			// Swagger UI: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Inventario Pactra API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
	return app
}

// Router registra las rutas de la API en la raíz.
func Router(app *fiber.App, deps RouterDeps) {
	// Movimientos
	movementHandler := NewMovementHandler(deps.Movements, deps.Log)
	viewHandler := NewViewHandler(deps.Views, deps.Log)
	records := app.Group("/records")
	records.Get("/", movementHandler.List)
	records.Post("/", movementHandler.Create)
	records.Post("/bulk", movementHandler.Bulk)
	records.Get("/view", viewHandler.Records)
	records.Get("/damaged", viewHandler.Damaged)
	records.Put("/:id", movementHandler.Update)
	records.Delete("/:id", movementHandler.Delete)

	app.Get("/dashboard", viewHandler.Dashboard)

	// Catálogos y resumen por modelo
	catalogHandler := NewCatalogHandler(deps.Movements, deps.Packing, deps.Log)
	app.Get("/models", catalogHandler.Models)
	app.Get("/models/summary", viewHandler.ModelSummary)
	app.Get("/models/summary/export", viewHandler.ExportModels)
	app.Get("/models/detail", viewHandler.ModelDetail)
	app.Get("/containers", catalogHandler.Containers)
	app.Get("/containers/:model", catalogHandler.Containers)
	app.Get("/clients", catalogHandler.Clients)

	// Importación
	importHandler := NewImportHandler(deps.Import, deps.Log)
	app.Post("/import/preview", importHandler.Preview)
	app.Post("/import", importHandler.Import)

	// Packing list
	packingHandler := NewPackingHandler(deps.Packing, deps.Log)
	app.Post("/packing-document", packingHandler.Document)
	app.Post("/packing-list", packingHandler.DOCX)
	app.Post("/packing-pdf", packingHandler.PDF)
}
