package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/usecase"
	"github.com/jhoicas/inventory-service/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del inventario.
// Despacho delgado: parseo de entrada y delegación al caso de uso; los errores
// retornan al ErrorHandler central, que audita y produce el sobre uniforme.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateInventory godoc
// @Summary      Crear registro de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id, available_stock, location (opcional)"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory [post]
func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewInvalidInputError("El cuerpo de la solicitud debe ser JSON válido.")
	}
	if in.ProductID == nil || in.AvailableStock == nil {
		return domain.NewInvalidInputError("El cuerpo de la solicitud debe contener 'product_id' y 'available_stock'.")
	}

	created, err := h.uc.CreateNewInventory(c.Context(), *in.ProductID, *in.AvailableStock, in.Location)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetInventory godoc
// @Summary      Consultar inventario de un producto
// @Tags         inventory
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{product_id} [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return err
	}
	inv, err := h.uc.GetInventoryForProduct(c.Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(inv)
}

// UpdateStock godoc
// @Summary      Actualizar el stock de un producto
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "new_stock"
// @Success      200  {object}  dto.UpdateStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{product_id}/stock [put]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewInvalidInputError("El cuerpo de la solicitud debe ser JSON válido.")
	}
	if in.NewStock == nil {
		return domain.NewInvalidInputError("El cuerpo de la solicitud debe contener 'new_stock'.")
	}

	updated, err := h.uc.UpdateStockForProduct(c.Context(), productID, *in.NewStock)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteInventory godoc
// @Summary      Eliminar el inventario de un producto
// @Tags         inventory
// @Param        product_id  path  int  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/{product_id} [delete]
func (h *InventoryHandler) DeleteInventory(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteInventoryForProduct(c.Context(), productID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetProductsWithStock godoc
// @Summary      Listar productos enriquecidos con stock
// @Tags         inventory
// @Produce      json
// @Param        page   query  int  false  "Página (default 1)"
// @Param        limit  query  int  false  "Productos por página (default 10)"
// @Success      200  {object}  dto.ProductPage
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/products-with-stock [get]
func (h *InventoryHandler) GetProductsWithStock(c *fiber.Ctx) error {
	page, err := parsePositiveQuery(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := parsePositiveQuery(c, "limit", 10)
	if err != nil {
		return err
	}

	result, err := h.uc.GetProductsWithStock(c.Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// parseProductID lee el path param product_id como entero.
func parseProductID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("product_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewInvalidInputError("El parámetro 'product_id' debe ser un entero.")
	}
	return id, nil
}

// parsePositiveQuery lee un query param entero positivo con valor por defecto.
func parsePositiveQuery(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.NewInvalidInputError("Los parámetros 'page' y 'limit' deben ser enteros positivos.")
	}
	return n, nil
}
