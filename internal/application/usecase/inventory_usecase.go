package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/postgres"
)

// InventoryUseCase lógica de negocio del ciclo de vida del inventario y del
// enriquecimiento de productos con stock. Único llamador del repositorio;
// toda validación ocurre aquí antes de cualquier escritura.
type InventoryUseCase struct {
	repo     repository.InventoryRepository
	products ports.ProductsService
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, products ports.ProductsService) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, products: products}
}

// CreateNewInventory valida y crea un nuevo registro de inventario para un producto.
// Una violación de unicidad del almacenamiento se traduce a RESOURCE_CONFLICT;
// cualquier otra violación de integridad (FK del producto) a INVALID_INPUT_DATA.
func (uc *InventoryUseCase) CreateNewInventory(ctx context.Context, productID int64, availableStock int, location *string) (*dto.InventoryResponse, error) {
	if availableStock < 0 {
		return nil, domain.NewInvalidInputError("El stock disponible ('available_stock') no puede ser negativo.")
	}

	id, err := uc.repo.CreateInventory(ctx, productID, availableStock, location)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, domain.NewConflictError(fmt.Sprintf("Ya existe un inventario para el producto con ID %d.", productID))
		}
		if postgres.IsIntegrityViolation(err) {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("No se pudo crear el inventario. Verifique que el producto con ID %d exista.", productID))
		}
		return nil, err
	}

	return dto.ToInventoryResponse(&entity.InventoryRecord{
		ID:             id,
		ProductID:      productID,
		AvailableStock: availableStock,
		Location:       location,
	}), nil
}

// GetInventoryForProduct obtiene el inventario de un producto específico.
func (uc *InventoryUseCase) GetInventoryForProduct(ctx context.Context, productID int64) (*dto.InventoryResponse, error) {
	rec, err := uc.repo.GetInventoryByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewNotFoundError("inventario", productID)
	}
	return dto.ToInventoryResponse(rec), nil
}

// UpdateStockForProduct valida y reemplaza el stock de un producto.
// Se verifica la existencia antes de mutar para dar un 404 claro; son dos
// transacciones separadas, así que queda una ventana de carrera entre ambas
// que se cubre tratando 0 filas afectadas también como RESOURCE_NOT_FOUND.
func (uc *InventoryUseCase) UpdateStockForProduct(ctx context.Context, productID int64, newStock int) (*dto.UpdateStockResponse, error) {
	if newStock < 0 {
		return nil, domain.NewInvalidInputError("El nuevo stock ('new_stock') no puede ser negativo.")
	}

	if _, err := uc.GetInventoryForProduct(ctx, productID); err != nil {
		return nil, err
	}

	affected, err := uc.repo.UpdateInventoryStock(ctx, productID, newStock)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Salvaguarda: la fila desapareció entre la verificación y el update.
		return nil, domain.NewNotFoundError("inventario", productID)
	}

	return &dto.UpdateStockResponse{
		Data: dto.UpdateStockView{
			ProductID:      productID,
			AvailableStock: newStock,
			Message:        "Stock actualizado correctamente.",
		},
	}, nil
}

// DeleteInventoryForProduct elimina el registro de inventario de un producto.
func (uc *InventoryUseCase) DeleteInventoryForProduct(ctx context.Context, productID int64) error {
	affected, err := uc.repo.DeleteInventory(ctx, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("inventario", productID)
	}
	return nil
}

// GetProductsWithStock obtiene una página de productos del servicio externo y
// la enriquece con el stock local. La ausencia de inventario para un producto
// no es un fallo en esta ruta de lectura: su available_stock queda en 0.
func (uc *InventoryUseCase) GetProductsWithStock(ctx context.Context, page, limit int) (*dto.ProductPage, error) {
	productPage, err := uc.products.FetchProducts(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	// Página vacía: responder de inmediato con la metadata tal cual, sin consultar el repositorio.
	if len(productPage.Data) == 0 {
		return productPage, nil
	}

	ids := make([]int64, 0, len(productPage.Data))
	for _, p := range productPage.Data {
		id, err := strconv.ParseInt(p.ID, 10, 64)
		if err != nil {
			// ID no numérico: se omite del lookup y conserva stock 0.
			continue
		}
		ids = append(ids, id)
	}

	records, err := uc.repo.GetInventoryByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	stockByProduct := make(map[int64]int, len(records))
	for _, rec := range records {
		stockByProduct[rec.ProductID] = rec.AvailableStock
	}

	for i := range productPage.Data {
		id, err := strconv.ParseInt(productPage.Data[i].ID, 10, 64)
		if err != nil {
			productPage.Data[i].Attributes.AvailableStock = 0
			continue
		}
		productPage.Data[i].Attributes.AvailableStock = stockByProduct[id]
	}

	return productPage, nil
}
