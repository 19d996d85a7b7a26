package repository

import (
	"context"

	"github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// StockSnapshotReader lectura consistente para el cálculo de disponibilidad.
type StockSnapshotReader interface {
	// LatestRecords devuelve, en una sola lectura consistente, el último registro de cada
	// serie (producto, atributos, bodega, socio) que cubren las consultas: el del socio de
	// la consulta y el de "cualquier socio". Sin registros devuelve slice vacío, no error.
	LatestRecords(ctx context.Context, queries []availability.Query) ([]entity.StockSnapshotRecord, error)
}

// StockSnapshotRepository escritura del libro de stock (append-only). Se usa dentro de la
// transacción de cada cambio de stock.
type StockSnapshotRepository interface {
	Latest(ctx context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error)
	// LatestForUpdate bloquea la serie hasta el fin de la transacción.
	LatestForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error)
	// Append inserta el registro y completa SeqNo y CreatedAt.
	Append(ctx context.Context, record *entity.StockSnapshotRecord) error
}

// StockOverviewRepository consulta de existencias actuales desde la vista materializada.
type StockOverviewRepository interface {
	ListLatestByWarehouse(ctx context.Context, companyID string, warehouseID int64, limit, offset int) ([]entity.StockSnapshotRecord, error)
	RefreshLatestView(ctx context.Context) error
}
