package dto

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductAttributes atributos de un producto del servicio de productos.
// Esquema fijo conocido más available_stock, el único campo que este servicio
// añade (efímero: se recalcula en cada petición, nunca se persiste).
type ProductAttributes struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    int             `json:"is_active"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`

	AvailableStock int `json:"available_stock"`
}

// ProductResource producto en formato JSON API.
type ProductResource struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes ProductAttributes `json:"attributes"`
}

// ProductPage página de productos con su metadata de paginación.
// Meta se conserva como RawMessage para retornarla intacta, byte a byte,
// tal como la entregó el servicio de productos.
type ProductPage struct {
	Data []ProductResource `json:"data"`
	Meta json.RawMessage   `json:"meta"`
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
