package dto

import "github.com/jhoicas/inventory-service/internal/domain/entity"

// CreateInventoryRequest cuerpo de POST /api/v1/inventory.
// product_id y available_stock son punteros para distinguir "ausente" de 0.
type CreateInventoryRequest struct {
	ProductID      *int64  `json:"product_id"`
	AvailableStock *int    `json:"available_stock"`
	Location       *string `json:"location"`
}

// UpdateStockRequest cuerpo de PUT /api/v1/inventory/:product_id/stock.
type UpdateStockRequest struct {
	NewStock *int `json:"new_stock"`
}

// InventoryAttributes atributos del recurso inventory en las respuestas.
type InventoryAttributes struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	AvailableStock int     `json:"available_stock"`
	Location       *string `json:"location"`
}

// InventoryResource recurso único en formato JSON API (data.type/id/attributes).
type InventoryResource struct {
	Type       string              `json:"type"`
	ID         string              `json:"id"`
	Attributes InventoryAttributes `json:"attributes"`
}

// InventoryResponse sobre de respuesta para crear/consultar inventario.
type InventoryResponse struct {
	Data InventoryResource `json:"data"`
}

// UpdateStockView vista retornada tras actualizar el stock.
type UpdateStockView struct {
	ProductID      int64  `json:"product_id"`
	AvailableStock int    `json:"available_stock"`
	Message        string `json:"message"`
}

// UpdateStockResponse sobre de respuesta para la actualización de stock.
type UpdateStockResponse struct {
	Data UpdateStockView `json:"data"`
}

// ErrorObject un error individual del sobre de errores JSON API.
type ErrorObject struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ErrorResponse sobre uniforme para toda respuesta no-2xx.
type ErrorResponse struct {
	Errors []ErrorObject `json:"errors"`
}

// ToInventoryResponse convierte la entidad al sobre JSON API.
func ToInventoryResponse(rec *entity.InventoryRecord) *InventoryResponse {
	return &InventoryResponse{
		Data: InventoryResource{
			Type: "inventory",
			ID:   itoa(rec.ID),
			Attributes: InventoryAttributes{
				ID:             rec.ID,
				ProductID:      rec.ProductID,
				AvailableStock: rec.AvailableStock,
				Location:       rec.Location,
			},
		},
	}
}
