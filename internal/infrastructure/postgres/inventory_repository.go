package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo documentos de toma física sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, company_id, warehouse_id, document_date, processed, processed_at, created_at, created_by`

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.WarehouseID, &inv.DocumentDate, &inv.Processed,
		&inv.ProcessedAt, &inv.CreatedAt, &inv.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste el documento y completa su ID.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (company_id, warehouse_id, document_date, processed, created_at, created_by)
		VALUES ($1, $2, $3, false, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, inv.CompanyID, inv.WarehouseID, inv.DocumentDate, inv.CreatedAt, inv.CreatedBy).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1`, id)
}

// GetForUpdate obtiene el documento bloqueando la fila hasta el fin de la tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Inventory, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryRepo) get(ctx context.Context, query string, id int64) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// MarkProcessed marca el documento como procesado.
func (r *InventoryRepo) MarkProcessed(ctx context.Context, id int64, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE inventories SET processed = true, processed_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark inventory processed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const inventoryLineColumns = `id, inventory_id, product_id, locator_id, hu_id, attributes_key, qty_book, qty_count, unit_measure, updated_at`

func scanInventoryLine(row pgx.Row) (*entity.InventoryLine, error) {
	var l entity.InventoryLine
	var huID *int64
	err := row.Scan(&l.ID, &l.InventoryID, &l.ProductID, &l.LocatorID, &huID, &l.AttributesKey,
		&l.QtyBook, &l.QtyCount, &l.UnitMeasure, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.HUID = int64OrZero(huID)
	return &l, nil
}

// ListLines líneas del documento ordenadas por ID.
func (r *InventoryRepo) ListLines(ctx context.Context, inventoryID int64) ([]*entity.InventoryLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+inventoryLineColumns+` FROM inventory_lines WHERE inventory_id = $1 ORDER BY id`, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list inventory lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLine
	for rows.Next() {
		l, err := scanInventoryLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetLine obtiene una línea del documento.
func (r *InventoryRepo) GetLine(ctx context.Context, inventoryID, lineID int64) (*entity.InventoryLine, error) {
	return r.getLine(ctx,
		`SELECT `+inventoryLineColumns+` FROM inventory_lines WHERE inventory_id = $1 AND id = $2`, inventoryID, lineID)
}

// GetLineByHUAndProduct obtiene la línea de la unidad y producto, si existe.
func (r *InventoryRepo) GetLineByHUAndProduct(ctx context.Context, inventoryID, huID, productID int64) (*entity.InventoryLine, error) {
	return r.getLine(ctx,
		`SELECT `+inventoryLineColumns+` FROM inventory_lines WHERE inventory_id = $1 AND hu_id = $2 AND product_id = $3`,
		inventoryID, huID, productID)
}

func (r *InventoryRepo) getLine(ctx context.Context, query string, args ...any) (*entity.InventoryLine, error) {
	l, err := scanInventoryLine(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory line: %w", err)
	}
	return l, nil
}

// CreateLine persiste la línea y completa su ID.
func (r *InventoryRepo) CreateLine(ctx context.Context, l *entity.InventoryLine) error {
	query := `
		INSERT INTO inventory_lines (inventory_id, product_id, locator_id, hu_id, attributes_key, qty_book, qty_count, unit_measure, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.InventoryID, l.ProductID, l.LocatorID, nullableInt64(l.HUID), l.AttributesKey,
		l.QtyBook, l.QtyCount, l.UnitMeasure, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory line: %w", err)
	}
	return nil
}

// UpdateLine actualiza ubicación, cantidades y unidad de medida.
func (r *InventoryRepo) UpdateLine(ctx context.Context, l *entity.InventoryLine) error {
	query := `
		UPDATE inventory_lines SET locator_id = $2, qty_book = $3, qty_count = $4, unit_measure = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, l.ID, l.LocatorID, l.QtyBook, l.QtyCount, l.UnitMeasure, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
