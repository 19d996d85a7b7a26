package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

var _ repository.HandlingUnitRepository = (*HandlingUnitRepo)(nil)

// HandlingUnitRepo unidades de manipulación sobre PostgreSQL (usable con pool o tx).
type HandlingUnitRepo struct {
	q Querier
}

// NewHandlingUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHandlingUnitRepository(q Querier) *HandlingUnitRepo {
	return &HandlingUnitRepo{q: q}
}

const huColumns = `id, value, warehouse_id, locator_id, parent_id, status, created_at, updated_at`

func scanHU(row pgx.Row) (*entity.HandlingUnit, error) {
	var hu entity.HandlingUnit
	var parent *int64
	if err := row.Scan(&hu.ID, &hu.Value, &hu.WarehouseID, &hu.LocatorID, &parent, &hu.Status, &hu.CreatedAt, &hu.UpdatedAt); err != nil {
		return nil, err
	}
	hu.ParentID = int64OrZero(parent)
	return &hu, nil
}

// Create persiste la unidad y completa su ID.
func (r *HandlingUnitRepo) Create(ctx context.Context, hu *entity.HandlingUnit) error {
	query := `
		INSERT INTO handling_units (value, warehouse_id, locator_id, parent_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		hu.Value, hu.WarehouseID, hu.LocatorID, nullableInt64(hu.ParentID), hu.Status, hu.CreatedAt, hu.UpdatedAt,
	).Scan(&hu.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert handling unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *HandlingUnitRepo) GetByID(ctx context.Context, id int64) (*entity.HandlingUnit, error) {
	hu, err := scanHU(r.q.QueryRow(ctx, `SELECT `+huColumns+` FROM handling_units WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get handling unit: %w", err)
	}
	return hu, nil
}

// UpdateStatus cambia el estado de la unidad.
func (r *HandlingUnitRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE handling_units SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update handling unit status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetProductStorage crea o reemplaza la cantidad del producto en la unidad.
func (r *HandlingUnitRepo) SetProductStorage(ctx context.Context, s *entity.HUProductStorage) error {
	query := `
		INSERT INTO hu_product_storage (hu_id, product_id, qty, unit_measure)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hu_id, product_id)
		DO UPDATE SET qty = EXCLUDED.qty, unit_measure = EXCLUDED.unit_measure`
	if _, err := r.q.Exec(ctx, query, s.HUID, s.ProductID, s.Qty, s.UnitMeasure); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set hu product storage: %w", err)
	}
	return nil
}

// Filtro común: $1 bodega, $2 ubicación, $3 estados, $4 solo nivel superior, $5 producto contenido.
const huFilterWhere = `
	 WHERE ($1 = 0 OR h.warehouse_id = $1)
	   AND ($2 = 0 OR h.locator_id = $2)
	   AND (cardinality($3::text[]) = 0 OR h.status = ANY($3))
	   AND (NOT $4 OR h.parent_id IS NULL)
	   AND ($5 = 0 OR EXISTS (SELECT 1 FROM hu_product_storage s WHERE s.hu_id = h.id AND s.product_id = $5))`

func huFilterArgs(f repository.HUFilter) []any {
	statuses := f.Statuses
	if statuses == nil {
		statuses = []string{}
	}
	return []any{f.WarehouseID, f.LocatorID, statuses, f.TopLevelOnly, f.ProductID}
}

// List lista unidades del filtro con paginación.
func (r *HandlingUnitRepo) List(ctx context.Context, filter repository.HUFilter, limit, offset int) ([]*entity.HandlingUnit, error) {
	query := `SELECT h.id, h.value, h.warehouse_id, h.locator_id, h.parent_id, h.status, h.created_at, h.updated_at
		FROM handling_units h` + huFilterWhere + ` ORDER BY h.id LIMIT $6 OFFSET $7`
	args := append(huFilterArgs(filter), limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list handling units: %w", err)
	}
	defer rows.Close()
	var list []*entity.HandlingUnit
	for rows.Next() {
		hu, err := scanHU(rows)
		if err != nil {
			return nil, fmt.Errorf("scan handling unit: %w", err)
		}
		list = append(list, hu)
	}
	return list, rows.Err()
}

// Cantidades por producto agregadas sobre el árbol de cada unidad raíz ($1).
const huTreeStorageQuery = `
	WITH RECURSIVE tree AS (
		SELECT id AS root_id, id AS hu_id FROM handling_units WHERE id = ANY($1::bigint[])
		UNION ALL
		SELECT t.root_id, c.id FROM tree t JOIN handling_units c ON c.parent_id = t.hu_id
	)
	SELECT t.root_id, s.product_id, SUM(s.qty), MIN(s.unit_measure)
	  FROM tree t
	  JOIN hu_product_storage s ON s.hu_id = t.hu_id
	 WHERE ($2 = 0 OR s.product_id = $2)
	 GROUP BY t.root_id, s.product_id
	 ORDER BY t.root_id, s.product_id`

// ListWithStorage lee las unidades del filtro y luego sus cantidades. Ambas lecturas se
// consumen completas antes de devolver, así el llamador puede seguir usando la misma tx.
func (r *HandlingUnitRepo) ListWithStorage(ctx context.Context, filter repository.HUFilter) ([]repository.HUWithStorage, error) {
	query := `SELECT h.id, h.value, h.warehouse_id, h.locator_id, h.parent_id, h.status, h.created_at, h.updated_at
		FROM handling_units h` + huFilterWhere + ` ORDER BY h.id`
	rows, err := r.q.Query(ctx, query, huFilterArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("list handling units: %w", err)
	}
	var units []entity.HandlingUnit
	for rows.Next() {
		hu, err := scanHU(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan handling unit: %w", err)
		}
		units = append(units, *hu)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read handling units: %w", err)
	}
	if len(units) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	storageRows, err := r.q.Query(ctx, huTreeStorageQuery, ids, filter.ProductID)
	if err != nil {
		return nil, fmt.Errorf("query hu storage: %w", err)
	}
	defer storageRows.Close()
	byHU := make(map[int64][]entity.HUProductStorage, len(units))
	for storageRows.Next() {
		var s entity.HUProductStorage
		if err := storageRows.Scan(&s.HUID, &s.ProductID, &s.Qty, &s.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan hu storage: %w", err)
		}
		byHU[s.HUID] = append(byHU[s.HUID], s)
	}
	if err := storageRows.Err(); err != nil {
		return nil, fmt.Errorf("read hu storage: %w", err)
	}

	out := make([]repository.HUWithStorage, 0, len(units))
	for _, u := range units {
		storages := byHU[u.ID]
		if len(storages) == 0 {
			continue
		}
		out = append(out, repository.HUWithStorage{HU: u, Storages: storages})
	}
	return out, nil
}
