package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pactra/internal/application/dto"
	"github.com/jhoicas/inventario-pactra/internal/domain"
	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

const templateHelp = ". Descargue la plantilla con `inventario plantilla` o configure PACKING_TEMPLATE_PATH"

// errorStatus clasifica el error de dominio en status HTTP y código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		return fiber.StatusNotFound, "TEMPLATE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrImport):
		return fiber.StatusBadRequest, "IMPORT"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrRenderBackend):
		return fiber.StatusInternalServerError, "RENDER_BACKEND"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, "STORAGE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde {"error": ...}. Los 5xx se registran con el request id.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if code == "TEMPLATE_NOT_FOUND" {
		msg += templateHelp
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", RequestID(c)).Str("path", c.Path()).Str("code", code).Msg("error en petición")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

// badBody 400 por cuerpo JSON ilegible.
func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido: " + err.Error(), Code: "INVALID_BODY"})
}

// ErrorHandler manejador de errores de fiber (rutas inexistentes, límites de cuerpo,
// pánicos recuperados) con el mismo formato que el resto de la API.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
		}
		return writeError(c, log, err)
	}
}
