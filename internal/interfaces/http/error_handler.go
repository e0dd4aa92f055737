package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/pkg/audit"
)

// NewErrorHandler construye el manejador central de errores de Fiber.
// Toda ruta de retorno no-2xx pasa por aquí: se clasifica el error en la
// taxonomía del dominio, se registra en el log de auditoría y se responde
// siempre con el sobre uniforme {errors: [{status, code, title, detail}]}.
func NewErrorHandler(auditLog *audit.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		apiErr := classify(err)

		auditLog.Record(audit.Entry{
			HTTPMethod: c.Method(),
			APIURL:     c.Path(),
			ErrorCode:  apiErr.Code,
			Message:    apiErr.Detail,
			StatusCode: apiErr.StatusCode,
		})

		return c.Status(apiErr.StatusCode).JSON(dto.ErrorResponse{
			Errors: []dto.ErrorObject{{
				Status: strconv.Itoa(apiErr.StatusCode),
				Code:   apiErr.Code,
				Title:  apiErr.Title,
				Detail: apiErr.Detail,
			}},
		})
	}
}

// classify mapea cualquier error a un *APIError. Los errores propios de Fiber
// (ruta inexistente, método no permitido) conservan su status; el resto sin
// clasificación específica cae a INTERNAL_SERVER_ERROR.
func classify(err error) *domain.APIError {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch {
		case fiberErr.Code == fiber.StatusNotFound:
			return &domain.APIError{
				StatusCode: fiberErr.Code,
				Code:       domain.CodeNotFound,
				Title:      "Recurso no encontrado",
				Detail:     fiberErr.Message,
			}
		case fiberErr.Code < 500:
			return &domain.APIError{
				StatusCode: fiberErr.Code,
				Code:       domain.CodeInvalidInput,
				Title:      "Datos de entrada inválidos",
				Detail:     fiberErr.Message,
			}
		}
	}

	return domain.NewInternalError(err.Error())
}
