package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pactra/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se respeta la del cliente si viene.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID clave de c.Locals con el id de la petición.
const LocalRequestID = "request_id"

// RequestLogger asigna el request id y registra método, ruta, status y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}

// RequestID id de la petición en curso ("" fuera de RequestLogger).
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalRequestID).(string); ok {
		return v
	}
	return ""
}
