package domain

import (
	"errors"
	"fmt"
)

// Códigos de error estandarizados de la API.
const (
	CodeInvalidInput       = "INVALID_INPUT_DATA"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeConflict           = "RESOURCE_CONFLICT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// APIError error de dominio con el formato del sobre JSON API de la respuesta.
// Toda ruta de error termina clasificada en uno de estos valores antes de responder.
type APIError struct {
	StatusCode int    // código HTTP asociado
	Code       string // código estandarizado (RESOURCE_NOT_FOUND, etc.)
	Title      string // mensaje corto legible
	Detail     string // detalle legible para el cliente; sin datos internos
}

func (e *APIError) Error() string {
	return e.Detail
}

// NewInvalidInputError 400: validación de entrada fallida.
func NewInvalidInputError(detail string) *APIError {
	return &APIError{
		StatusCode: 400,
		Code:       CodeInvalidInput,
		Title:      "Datos de entrada inválidos",
		Detail:     detail,
	}
}

// NewNotFoundError 404: recurso referenciado inexistente.
func NewNotFoundError(resourceType string, resourceID int64) *APIError {
	msg := fmt.Sprintf("Recurso no encontrado: %s con ID %d", resourceType, resourceID)
	return &APIError{
		StatusCode: 404,
		Code:       CodeNotFound,
		Title:      msg,
		Detail:     msg,
	}
}

// NewConflictError 409: el recurso ya existe.
func NewConflictError(detail string) *APIError {
	return &APIError{
		StatusCode: 409,
		Code:       CodeConflict,
		Title:      "Conflicto de Recurso",
		Detail:     detail,
	}
}

// NewServiceUnavailableError 503: fallo atribuible al servicio dependiente de productos.
func NewServiceUnavailableError(detail string) *APIError {
	return &APIError{
		StatusCode: 503,
		Code:       CodeServiceUnavailable,
		Title:      "Servicio Dependiente No Disponible",
		Detail:     detail,
	}
}

// NewInternalError 500: cualquier fallo sin clasificación específica.
func NewInternalError(detail string) *APIError {
	return &APIError{
		StatusCode: 500,
		Code:       CodeInternal,
		Title:      "Error Interno del Servidor",
		Detail:     detail,
	}
}

// AsAPIError clasifica cualquier error en un *APIError.
// Los errores ya clasificados (aun envueltos con %w) se devuelven tal cual;
// el resto cae a INTERNAL_SERVER_ERROR.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError(err.Error())
}
