package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

var (
	_ repository.StockSnapshotRepository = (*StockSnapshotRepo)(nil)
	_ repository.StockSnapshotReader     = (*StockSnapshotReader)(nil)
	_ repository.StockOverviewRepository = (*StockSnapshotReader)(nil)
)

const snapshotColumns = `seq_no, product_id, warehouse_id, attributes_key, partner_id, date_projected, qty, created_at, created_by`

func scanSnapshot(row pgx.Row) (entity.StockSnapshotRecord, error) {
	var s entity.StockSnapshotRecord
	err := row.Scan(&s.SeqNo, &s.ProductID, &s.WarehouseID, &s.AttributesKey, &s.PartnerID,
		&s.DateProjected, &s.Qty, &s.CreatedAt, &s.CreatedBy)
	return s, err
}

// StockSnapshotRepo escritura del libro de stock (usable con pool o tx).
type StockSnapshotRepo struct {
	q Querier
}

// NewStockSnapshotRepository construye el adaptador. Pasar tx para que el bloqueo tenga efecto.
func NewStockSnapshotRepository(q Querier) *StockSnapshotRepo {
	return &StockSnapshotRepo{q: q}
}

const latestSnapshotQuery = `
	SELECT ` + snapshotColumns + `
	  FROM stock_snapshots
	 WHERE product_id = $1 AND warehouse_id = $2 AND attributes_key = $3 AND partner_id = $4
	 ORDER BY date_projected DESC, seq_no DESC
	 LIMIT 1`

// Latest último registro de la serie; nil, nil si no hay ninguno.
func (r *StockSnapshotRepo) Latest(ctx context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error) {
	return r.latest(ctx, latestSnapshotQuery, key)
}

// LatestForUpdate toma un advisory lock transaccional sobre la serie (cubre también la
// serie aún vacía) y bloquea su último registro.
func (r *StockSnapshotRepo) LatestForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey(key)); err != nil {
		return nil, fmt.Errorf("lock stock series: %w", err)
	}
	return r.latest(ctx, latestSnapshotQuery+` FOR UPDATE`, key)
}

func (r *StockSnapshotRepo) latest(ctx context.Context, query string, key entity.StockKey) (*entity.StockSnapshotRecord, error) {
	s, err := scanSnapshot(r.q.QueryRow(ctx, query, key.ProductID, key.WarehouseID, key.AttributesKey, key.PartnerID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return &s, nil
}

// Append inserta el registro; la secuencia stock_snapshot_seq asigna SeqNo.
func (r *StockSnapshotRepo) Append(ctx context.Context, rec *entity.StockSnapshotRecord) error {
	query := `
		INSERT INTO stock_snapshots (product_id, warehouse_id, attributes_key, partner_id, date_projected, qty, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq_no, created_at`
	err := r.q.QueryRow(ctx, query,
		rec.ProductID, rec.WarehouseID, rec.AttributesKey, rec.PartnerID, rec.DateProjected, rec.Qty, rec.CreatedBy,
	).Scan(&rec.SeqNo, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func lockKey(k entity.StockKey) string {
	return fmt.Sprintf("stock:%d:%d:%s:%d", k.ProductID, k.WarehouseID, k.AttributesKey, k.PartnerID)
}

// StockSnapshotReader lecturas de disponibilidad y existencias sobre el pool.
type StockSnapshotReader struct {
	pool *pgxpool.Pool
}

// NewStockSnapshotReader construye el lector.
func NewStockSnapshotReader(pool *pgxpool.Pool) *StockSnapshotReader {
	return &StockSnapshotReader{pool: pool}
}

// Por cada consulta, último registro de cada serie en alcance: el socio de la consulta y "cualquier socio".
// warehouse_id = 0 en la consulta abarca todas las bodegas.
const latestRecordsQuery = `
	WITH q AS (
		SELECT * FROM unnest($1::bigint[], $2::text[], $3::bigint[], $4::bigint[])
		    AS q(product_id, attributes_key, warehouse_id, partner_id)
	)
	SELECT DISTINCT ON (s.product_id, s.attributes_key, s.warehouse_id, s.partner_id)
	       s.seq_no, s.product_id, s.warehouse_id, s.attributes_key, s.partner_id,
	       s.date_projected, s.qty, s.created_at, s.created_by
	  FROM stock_snapshots s
	  JOIN q ON s.product_id = q.product_id
	        AND s.attributes_key = q.attributes_key
	        AND (q.warehouse_id = 0 OR s.warehouse_id = q.warehouse_id)
	        AND (s.partner_id = 0 OR s.partner_id = q.partner_id)
	 WHERE s.seq_no > 0
	 ORDER BY s.product_id, s.attributes_key, s.warehouse_id, s.partner_id,
	          s.date_projected DESC, s.seq_no DESC`

// LatestRecords lee en una transacción REPEATABLE READ de solo lectura para que todos los
// registros provengan del mismo instante.
func (r *StockSnapshotReader) LatestRecords(ctx context.Context, queries []availability.Query) ([]entity.StockSnapshotRecord, error) {
	if len(queries) == 0 {
		return []entity.StockSnapshotRecord{}, nil
	}
	products := make([]int64, len(queries))
	attrs := make([]string, len(queries))
	warehouses := make([]int64, len(queries))
	partners := make([]int64, len(queries))
	for i, q := range queries {
		products[i] = q.ProductID()
		attrs[i] = q.AttributesKey().String()
		warehouses[i] = q.WarehouseID()
		partners[i] = q.PartnerID()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot read: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, latestRecordsQuery, products, attrs, warehouses, partners)
	if err != nil {
		return nil, fmt.Errorf("query latest snapshots: %w", err)
	}
	defer rows.Close()

	out := []entity.StockSnapshotRecord{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read latest snapshots: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot read: %w", err)
	}
	return out, nil
}

// ListLatestByWarehouse existencias actuales de la empresa desde la vista materializada.
// warehouseID = 0 lista todas las bodegas.
func (r *StockSnapshotReader) ListLatestByWarehouse(ctx context.Context, companyID string, warehouseID int64, limit, offset int) ([]entity.StockSnapshotRecord, error) {
	query := `
		SELECT v.seq_no, v.product_id, v.warehouse_id, v.attributes_key, v.partner_id,
		       v.date_projected, v.qty, v.created_at, v.created_by
		  FROM stock_snapshot_latest v
		  JOIN products p ON p.id = v.product_id
		 WHERE p.company_id = $1 AND ($2 = 0 OR v.warehouse_id = $2)
		 ORDER BY v.warehouse_id, v.product_id, v.attributes_key, v.partner_id
		 LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list latest stock: %w", err)
	}
	defer rows.Close()
	var list []entity.StockSnapshotRecord
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan latest stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// RefreshLatestView recalcula la vista sin bloquear lecturas (requiere su índice único).
func (r *StockSnapshotReader) RefreshLatestView(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `REFRESH MATERIALIZED VIEW CONCURRENTLY stock_snapshot_latest`); err != nil {
		return fmt.Errorf("refresh stock_snapshot_latest: %w", err)
	}
	return nil
}
