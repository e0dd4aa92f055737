package repository

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// InventoryRepository operaciones CRUD sobre la tabla inventory.
// Cada operación adquiere una conexión del pool, ejecuta una sola sentencia
// y libera la conexión en toda ruta de salida. Los errores de integridad del
// almacenamiento se devuelven sin traducir: la clasificación es del servicio.
type InventoryRepository interface {
	// CreateInventory inserta un registro y retorna el ID generado.
	CreateInventory(ctx context.Context, productID int64, availableStock int, location *string) (int64, error)

	// GetInventoryByProductID retorna el registro o (nil, nil) si no existe.
	GetInventoryByProductID(ctx context.Context, productID int64) (*entity.InventoryRecord, error)

	// UpdateInventoryStock reemplaza available_stock y retorna las filas afectadas (0 = no existe, sin error).
	UpdateInventoryStock(ctx context.Context, productID int64, newStock int) (int64, error)

	// DeleteInventory elimina el registro y retorna las filas afectadas (0 = no existía).
	DeleteInventory(ctx context.Context, productID int64) (int64, error)

	// GetInventoryByProductIDs lookup por lote. Entrada vacía retorna vacío sin consultar.
	GetInventoryByProductIDs(ctx context.Context, productIDs []int64) ([]entity.InventoryRecord, error)
}
