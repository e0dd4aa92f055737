package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Cada método adquiere una conexión del pool, ejecuta exactamente una sentencia
// y libera la conexión en toda ruta de salida (defer). Las escrituras usan una
// transacción explícita con commit o rollback; ninguna transacción abarca más
// de una llamada al repositorio.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository construye el adaptador con el pool compartido.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// CreateInventory inserta un registro de inventario y retorna el ID generado.
// Una violación de integridad (unique en product_id, FK del producto) se
// devuelve sin traducir: la capa de servicio decide entre 409 y 400.
func (r *InventoryRepo) CreateInventory(ctx context.Context, productID int64, availableStock int, location *string) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	query := `
		INSERT INTO inventory (product_id, available_stock, location, last_updated)
		VALUES ($1, $2, $3, now())
		RETURNING id`
	var id int64
	if err := tx.QueryRow(ctx, query, productID, availableStock, location).Scan(&id); err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("create inventory: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

// GetInventoryByProductID obtiene un registro por product_id.
// Lectura sin transacción; retorna (nil, nil) si no existe.
func (r *InventoryRepo) GetInventoryByProductID(ctx context.Context, productID int64) (*entity.InventoryRecord, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	query := `
		SELECT id, product_id, available_stock, location, last_updated
		FROM inventory WHERE product_id = $1`
	var rec entity.InventoryRecord
	err = conn.QueryRow(ctx, query, productID).Scan(
		&rec.ID, &rec.ProductID, &rec.AvailableStock, &rec.Location, &rec.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}

// UpdateInventoryStock reemplaza available_stock (no es un delta) y retorna
// las filas afectadas. 0 filas no es un error: el servicio lo interpreta.
func (r *InventoryRepo) UpdateInventoryStock(ctx context.Context, productID int64, newStock int) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	query := `
		UPDATE inventory
		SET available_stock = $1, last_updated = now()
		WHERE product_id = $2`
	tag, err := tx.Exec(ctx, query, newStock, productID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("update stock: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteInventory elimina el registro por product_id y retorna las filas afectadas.
func (r *InventoryRepo) DeleteInventory(ctx context.Context, productID int64) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM inventory WHERE product_id = $1`, productID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("delete inventory: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetInventoryByProductIDs obtiene los registros para un conjunto de product_ids.
// Entrada vacía retorna vacío sin emitir consulta. El conjunto viaja como
// parámetro de array ($1 = ANY), nunca concatenado en el texto de la query.
func (r *InventoryRepo) GetInventoryByProductIDs(ctx context.Context, productIDs []int64) ([]entity.InventoryRecord, error) {
	if len(productIDs) == 0 {
		return []entity.InventoryRecord{}, nil
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	query := `
		SELECT id, product_id, available_stock, location, last_updated
		FROM inventory WHERE product_id = ANY($1)`
	rows, err := conn.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get inventory batch: %w", err)
	}
	defer rows.Close()

	records := make([]entity.InventoryRecord, 0, len(productIDs))
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.AvailableStock, &rec.Location, &rec.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar inventory: %w", err)
	}
	return records, nil
}
