package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/application/importer"
	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// ImportHandler importación de hojas de cálculo (multipart, campo "file").
type ImportHandler struct {
	uc  *importer.ImportUseCase
	log *logger.Logger
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.ImportUseCase, log *logger.Logger) *ImportHandler {
	return &ImportHandler{uc: uc, log: log}
}

// Preview godoc
// @Summary      Vista previa de importación
// @Description  Lee un .xlsx o .csv y devuelve las filas normalizadas sin guardarlas.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Hoja de cálculo"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /import/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: falta el archivo (campo file)", domain.ErrValidation))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: abrir archivo: %w", domain.ErrValidation, err))
	}
	defer f.Close()

	out, err := h.uc.Preview(fh.Filename, f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar hoja de cálculo
// @Description  Normaliza y guarda. replace=true borra antes todos los movimientos.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Hoja de cálculo"
// @Param        replace  formData  bool    false  "Reemplazar todo"
// @Success      200      {object}  dto.BulkResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: falta el archivo (campo file)", domain.ErrValidation))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: abrir archivo: %w", domain.ErrValidation, err))
	}
	defer f.Close()

	n, err := h.uc.Commit(c.UserContext(), fh.Filename, f, formFlag(c.FormValue("replace")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BulkResponse{OK: true, Count: n})
}

func formFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "si", "sí", "yes":
		return true
	}
	return false
}
