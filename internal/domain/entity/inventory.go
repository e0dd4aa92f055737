package entity

import "time"

// InventoryRecord registro de stock propiedad de este servicio, uno por producto.
// La unicidad de ProductID la garantiza la constraint de la tabla.
type InventoryRecord struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	AvailableStock int       `json:"available_stock"`
	Location       *string   `json:"location"`
	LastUpdated    time.Time `json:"last_updated"`
}
