package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/inventory-service/pkg/logger"
	"github.com/rs/zerolog"
)

// RequestLogger middleware de logging estructurado por petición.
// Asigna un request_id y registra método, ruta, status y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.New().String()
		c.Locals("request_id", requestID)
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// El ErrorHandler central aún no ha corrido; anticipar el status clasificado
			status = classify(err).StatusCode
		}
		var evt *zerolog.Event
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		default:
			evt = log.Info()
		}
		evt.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("petición atendida")

		return err
	}
}
