package ports

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/application/dto"
)

// ProductsService puerto hacia el servicio externo de productos.
// Cualquier fallo de transporte, configuración o protocolo llega al llamador
// como *domain.APIError con código SERVICE_UNAVAILABLE, nunca como error crudo de red.
type ProductsService interface {
	// FetchProducts obtiene una página de productos (query params page/limit).
	FetchProducts(ctx context.Context, page, limit int) (*dto.ProductPage, error)
}
