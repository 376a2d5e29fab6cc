package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-pactra/internal/application/importer"
	"github.com/jhoicas/inventario-pactra/internal/application/inventory"
	"github.com/jhoicas/inventario-pactra/internal/application/packing"
	"github.com/jhoicas/inventario-pactra/internal/domain/repository"
	infradocx "github.com/jhoicas/inventario-pactra/internal/infrastructure/docx"
	infrapdf "github.com/jhoicas/inventario-pactra/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/inventario-pactra/internal/interfaces/http"
	"github.com/jhoicas/inventario-pactra/pkg/config"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Str("pdf", cfg.Packing.PDFBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeDB, err := openRepository(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer closeDB()

	movementUC := inventory.NewMovementUseCase(repo, log.Named("movements"))
	viewUC := inventory.NewViewUseCase(movementUC, spreadsheet.NewExporter())
	importUC := importer.NewImportUseCase(spreadsheet.NewReader(), movementUC, cfg.Import.PreviewRows, log.Named("import"))

	// PDF: maroto nativo o plantilla DOCX convertida con LibreOffice
	filler := infradocx.NewFiller()
	var pdfRenderer packing.PDFRenderer = infrapdf.NewMarotoGenerator()
	if cfg.Packing.PDFBackend == "office" {
		pdfRenderer = infrapdf.NewOfficeRenderer(filler, cfg.Packing.TemplatePath, cfg.Packing.OfficeBinary)
	}
	packingUC := packing.NewPackingUseCase(nil, filler, pdfRenderer, cfg.Packing.TemplatePath, log.Named("packing"))

	if _, err := os.Stat(cfg.Packing.TemplatePath); err != nil {
		log.Warn().Str("path", cfg.Packing.TemplatePath).Msg("plantilla DOCX no encontrada; ejecute `inventario plantilla`")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		BodyLimitMB: cfg.HTTP.BodyLimitMB,
		StaticDir:   cfg.HTTP.StaticDir,
		SwaggerFile: cfg.HTTP.SwaggerFile,
	}, httpRouter.RouterDeps{
		Movements: movementUC,
		Views:     viewUC,
		Import:    importUC,
		Packing:   packingUC,
		Log:       log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepository abre el almacenamiento según DB_DRIVER y aplica el esquema.
func openRepository(ctx context.Context, cfg config.DBConfig) (repository.MovementRepository, func(), error) {
	if cfg.Driver == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewMovementRepository(pool), pool.Close, nil
	}

	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewMovementRepository(db), func() { _ = db.Close() }, nil
}
