package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.LocatorRepository   = (*LocatorRepo)(nil)
)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{pool: pool}
}

// Create persiste una nueva bodega y completa su ID.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (company_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.pool.QueryRow(context.Background(), query,
		warehouse.CompanyID, warehouse.Name, warehouse.Address,
		warehouse.CreatedAt, warehouse.UpdatedAt,
	).Scan(&warehouse.ID)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, address = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista bodegas por empresa con paginación.
func (r *WarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM warehouses WHERE company_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete elimina una bodega por ID. Falla con ErrConflict si tiene stock o ubicaciones.
func (r *WarehouseRepo) Delete(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// LocatorRepo ubicaciones de bodega sobre PostgreSQL.
type LocatorRepo struct {
	pool *pgxpool.Pool
}

// NewLocatorRepository construye el adaptador de ubicaciones.
func NewLocatorRepository(pool *pgxpool.Pool) *LocatorRepo {
	return &LocatorRepo{pool: pool}
}

// Create persiste la ubicación. El código es único por bodega.
func (r *LocatorRepo) Create(l *entity.Locator) error {
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO locators (warehouse_id, value, created_at) VALUES ($1, $2, $3) RETURNING id`,
		l.WarehouseID, l.Value, l.CreatedAt,
	).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert locator: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocatorRepo) GetByID(id int64) (*entity.Locator, error) {
	var l entity.Locator
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, warehouse_id, value, created_at FROM locators WHERE id = $1`, id,
	).Scan(&l.ID, &l.WarehouseID, &l.Value, &l.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get locator: %w", err)
	}
	return &l, nil
}

// ListByWarehouse lista las ubicaciones de una bodega ordenadas por código.
func (r *LocatorRepo) ListByWarehouse(warehouseID int64) ([]*entity.Locator, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, warehouse_id, value, created_at FROM locators WHERE warehouse_id = $1 ORDER BY value`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list locators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Locator
	for rows.Next() {
		var l entity.Locator
		if err := rows.Scan(&l.ID, &l.WarehouseID, &l.Value, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan locator: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
