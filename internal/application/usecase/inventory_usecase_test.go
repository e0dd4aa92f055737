package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/usecase"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeRepo repositorio en memoria con contadores de llamadas y errores forzables.
type fakeRepo struct {
	records map[int64]*entity.InventoryRecord
	nextID  int64

	createErr       error
	forceUpdateZero bool // simula la carrera: la fila desaparece entre verificación y update

	createCalls int
	updateCalls int
	batchCalls  [][]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[int64]*entity.InventoryRecord), nextID: 1}
}

func (f *fakeRepo) CreateInventory(_ context.Context, productID int64, availableStock int, location *string) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.records[productID]; ok {
		return 0, fmt.Errorf("create inventory: %w", &pgconn.PgError{Code: "23505"})
	}
	id := f.nextID
	f.nextID++
	f.records[productID] = &entity.InventoryRecord{
		ID:             id,
		ProductID:      productID,
		AvailableStock: availableStock,
		Location:       location,
	}
	return id, nil
}

func (f *fakeRepo) GetInventoryByProductID(_ context.Context, productID int64) (*entity.InventoryRecord, error) {
	rec, ok := f.records[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRepo) UpdateInventoryStock(_ context.Context, productID int64, newStock int) (int64, error) {
	f.updateCalls++
	if f.forceUpdateZero {
		return 0, nil
	}
	rec, ok := f.records[productID]
	if !ok {
		return 0, nil
	}
	rec.AvailableStock = newStock
	return 1, nil
}

func (f *fakeRepo) DeleteInventory(_ context.Context, productID int64) (int64, error) {
	if _, ok := f.records[productID]; !ok {
		return 0, nil
	}
	delete(f.records, productID)
	return 1, nil
}

func (f *fakeRepo) GetInventoryByProductIDs(_ context.Context, productIDs []int64) ([]entity.InventoryRecord, error) {
	f.batchCalls = append(f.batchCalls, productIDs)
	out := make([]entity.InventoryRecord, 0, len(productIDs))
	for _, id := range productIDs {
		if rec, ok := f.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// fakeProducts puerto de productos con respuesta o error fijos.
type fakeProducts struct {
	page *dto.ProductPage
	err  error

	lastPage  int
	lastLimit int
}

func (f *fakeProducts) FetchProducts(_ context.Context, page, limit int) (*dto.ProductPage, error) {
	f.lastPage = page
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

// productResource helper para construir un producto de la página externa.
func productResource(id string, name string) dto.ProductResource {
	return dto.ProductResource{
		Type: "productos",
		ID:   id,
		Attributes: dto.ProductAttributes{
			Name: name,
		},
	}
}

// requireAPIError verifica clase y código del error de dominio.
func requireAPIError(t *testing.T, err error, status int, code string) *domain.APIError {
	t.Helper()
	require.Error(t, err)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.StatusCode)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateNewInventory
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateNewInventory_StockNegativoRechazadoSinEscribir(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.CreateNewInventory(context.Background(), 200, -1, nil)

	requireAPIError(t, err, 400, domain.CodeInvalidInput)
	assert.Zero(t, repo.createCalls, "no debe intentarse ninguna escritura")
}

func TestCreateNewInventory_Exitoso(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	loc := "bodega-norte"
	created, err := uc.CreateNewInventory(context.Background(), 200, 100, &loc)

	require.NoError(t, err)
	assert.Equal(t, "inventory", created.Data.Type)
	assert.Equal(t, int64(200), created.Data.Attributes.ProductID)
	assert.Equal(t, 100, created.Data.Attributes.AvailableStock)
	require.NotNil(t, created.Data.Attributes.Location)
	assert.Equal(t, "bodega-norte", *created.Data.Attributes.Location)
	assert.NotZero(t, created.Data.Attributes.ID, "debe incluir el ID generado")
}

func TestCreateNewInventory_DuplicadoTraducidoAConflicto(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.CreateNewInventory(context.Background(), 200, 100, nil)
	require.NoError(t, err)

	// Segunda creación para el mismo product_id: 23505 → 409
	_, err = uc.CreateNewInventory(context.Background(), 200, 50, nil)
	requireAPIError(t, err, 409, domain.CodeConflict)

	// El registro original permanece intacto
	rec, _ := repo.GetInventoryByProductID(context.Background(), 200)
	require.NotNil(t, rec)
	assert.Equal(t, 100, rec.AvailableStock)
}

func TestCreateNewInventory_ViolacionDeFKTraducidaAEntradaInvalida(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = fmt.Errorf("create inventory: %w", &pgconn.PgError{Code: "23503"})
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.CreateNewInventory(context.Background(), 999, 10, nil)

	apiErr := requireAPIError(t, err, 400, domain.CodeInvalidInput)
	assert.Contains(t, apiErr.Detail, "999")
}

func TestCreateNewInventory_ErrorDesconocidoSePropaga(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("conexión perdida")
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.CreateNewInventory(context.Background(), 200, 10, nil)

	require.Error(t, err)
	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr), "no debe clasificarse aquí; lo hace el handler central")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetInventoryForProduct / UpdateStockForProduct / DeleteInventoryForProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInventoryForProduct_Inexistente(t *testing.T) {
	uc := usecase.NewInventoryUseCase(newFakeRepo(), &fakeProducts{})

	_, err := uc.GetInventoryForProduct(context.Background(), 404)

	apiErr := requireAPIError(t, err, 404, domain.CodeNotFound)
	assert.Contains(t, apiErr.Detail, "404")
}

func TestUpdateStockForProduct_StockNegativoRechazadoSinEscribir(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.UpdateStockForProduct(context.Background(), 200, -5)

	requireAPIError(t, err, 400, domain.CodeInvalidInput)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateStockForProduct_Inexistente(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.UpdateStockForProduct(context.Background(), 200, 10)

	requireAPIError(t, err, 404, domain.CodeNotFound)
	assert.Zero(t, repo.updateCalls, "la verificación de existencia corta antes del update")
}

func TestUpdateStockForProduct_CarreraFilaDesaparecida(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})

	_, err := uc.CreateNewInventory(context.Background(), 200, 100, nil)
	require.NoError(t, err)

	// La fila existe en la verificación pero el update afecta 0 filas
	repo.forceUpdateZero = true
	_, err = uc.UpdateStockForProduct(context.Background(), 200, 10)

	requireAPIError(t, err, 404, domain.CodeNotFound)
}

func TestDeleteInventoryForProduct_Inexistente(t *testing.T) {
	uc := usecase.NewInventoryUseCase(newFakeRepo(), &fakeProducts{})

	err := uc.DeleteInventoryForProduct(context.Background(), 200)

	requireAPIError(t, err, 404, domain.CodeNotFound)
}

func TestCicloCompletoCrearActualizarEliminar(t *testing.T) {
	repo := newFakeRepo()
	uc := usecase.NewInventoryUseCase(repo, &fakeProducts{})
	ctx := context.Background()

	// create(P, S) → get(P) retorna S
	_, err := uc.CreateNewInventory(ctx, 300, 75, nil)
	require.NoError(t, err)
	got, err := uc.GetInventoryForProduct(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 75, got.Data.Attributes.AvailableStock)

	// update(P, S2) → get(P) retorna S2
	updated, err := uc.UpdateStockForProduct(ctx, 300, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Data.AvailableStock)
	assert.Equal(t, "Stock actualizado correctamente.", updated.Data.Message)
	got, err = uc.GetInventoryForProduct(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Data.Attributes.AvailableStock)

	// delete(P) → get(P) retorna 404
	require.NoError(t, uc.DeleteInventoryForProduct(ctx, 300))
	_, err = uc.GetInventoryForProduct(ctx, 300)
	requireAPIError(t, err, 404, domain.CodeNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetProductsWithStock — el join de enriquecimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProductsWithStock_EnriqueceConStockLocal(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	seed := map[int64]int{101: 150, 102: 45, 103: 320, 104: 80}
	for pid, stock := range seed {
		repo.records[pid] = &entity.InventoryRecord{ID: pid, ProductID: pid, AvailableStock: stock}
	}

	meta := json.RawMessage(`{"total":4,"limite":10,"offset":0}`)
	productsSvc := &fakeProducts{page: &dto.ProductPage{
		Data: []dto.ProductResource{
			productResource("101", "RGB Mechanical Keyboard"),
			productResource("102", "34-inch Ultrawide Monitor"),
			productResource("103", "Wireless Ergonomic Mouse"),
			productResource("104", "Full HD 1080p Webcam"),
		},
		Meta: meta,
	}}
	uc := usecase.NewInventoryUseCase(repo, productsSvc)

	result, err := uc.GetProductsWithStock(ctx, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, productsSvc.lastPage)
	assert.Equal(t, 10, productsSvc.lastLimit)

	// El lookup por lote recibe exactamente los ids de la página
	require.Len(t, repo.batchCalls, 1)
	assert.ElementsMatch(t, []int64{101, 102, 103, 104}, repo.batchCalls[0])

	require.Len(t, result.Data, 4)
	for i, want := range []int{150, 45, 320, 80} {
		assert.Equal(t, want, result.Data[i].Attributes.AvailableStock)
	}
	// La metadata de paginación pasa intacta
	assert.JSONEq(t, string(meta), string(result.Meta))
}

func TestGetProductsWithStock_ProductoSinInventarioQuedaEnCero(t *testing.T) {
	repo := newFakeRepo()
	repo.records[101] = &entity.InventoryRecord{ID: 1, ProductID: 101, AvailableStock: 50}

	productsSvc := &fakeProducts{page: &dto.ProductPage{
		Data: []dto.ProductResource{
			productResource("101", "Product A"),
			productResource("103", "Product C"), // sin inventario
		},
		Meta: json.RawMessage(`{"total":2,"limite":10,"offset":0}`),
	}}
	uc := usecase.NewInventoryUseCase(repo, productsSvc)

	result, err := uc.GetProductsWithStock(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 50, result.Data[0].Attributes.AvailableStock)
	assert.Equal(t, 0, result.Data[1].Attributes.AvailableStock, "la ausencia de inventario no es un fallo: stock 0")
}

func TestGetProductsWithStock_PaginaVaciaNoConsultaRepositorio(t *testing.T) {
	repo := newFakeRepo()
	meta := json.RawMessage(`{"total":0,"limite":10,"offset":0}`)
	productsSvc := &fakeProducts{page: &dto.ProductPage{Data: []dto.ProductResource{}, Meta: meta}}
	uc := usecase.NewInventoryUseCase(repo, productsSvc)

	result, err := uc.GetProductsWithStock(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.JSONEq(t, string(meta), string(result.Meta))
	assert.Empty(t, repo.batchCalls, "no debe emitirse ninguna consulta al repositorio")
}

func TestGetProductsWithStock_ServicioDeProductosCaidoSePropaga(t *testing.T) {
	productsSvc := &fakeProducts{err: domain.NewServiceUnavailableError("No se pudo conectar con el servicio de productos")}
	uc := usecase.NewInventoryUseCase(newFakeRepo(), productsSvc)

	_, err := uc.GetProductsWithStock(context.Background(), 1, 10)

	requireAPIError(t, err, 503, domain.CodeServiceUnavailable)
}

func TestGetProductsWithStock_IDNoNumericoSeOmiteDelLookup(t *testing.T) {
	repo := newFakeRepo()
	repo.records[101] = &entity.InventoryRecord{ID: 1, ProductID: 101, AvailableStock: 50}

	productsSvc := &fakeProducts{page: &dto.ProductPage{
		Data: []dto.ProductResource{
			productResource("101", "Product A"),
			productResource("abc", "Producto con ID corrupto"),
		},
		Meta: json.RawMessage(`{}`),
	}}
	uc := usecase.NewInventoryUseCase(repo, productsSvc)

	result, err := uc.GetProductsWithStock(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, repo.batchCalls, 1)
	assert.Equal(t, []int64{101}, repo.batchCalls[0])
	assert.Equal(t, 50, result.Data[0].Attributes.AvailableStock)
	assert.Equal(t, 0, result.Data[1].Attributes.AvailableStock)
}
