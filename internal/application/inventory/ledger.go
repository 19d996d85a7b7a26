package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	costing "github.com/jhoicas/atp-api/internal/domain/inventory"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// ledger aplica cambios sobre el libro de stock usando repositorios atados a una transacción.
type ledger struct {
	snapshotRepo repository.StockSnapshotRepository
	productRepo  repository.ProductRepository
	userID       string
}

// post bloquea la serie, calcula la nueva cantidad y agrega el registro.
// Una cantidad resultante negativa devuelve domain.ErrInsufficientStock.
func (l ledger) post(ctx context.Context, key entity.StockKey, delta decimal.Decimal, date time.Time) (*entity.StockSnapshotRecord, error) {
	latest, err := l.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	return l.appendDelta(ctx, key, latest, delta, date)
}

// receive entrada: actualiza el costo promedio ponderado del producto y suma la cantidad.
func (l ledger) receive(ctx context.Context, product *entity.Product, key entity.StockKey, qty, unitCost decimal.Decimal, date time.Time) (*entity.StockSnapshotRecord, error) {
	latest, err := l.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	stockQty := decimal.Zero
	if latest != nil {
		stockQty = latest.Qty
	}
	newCost := costing.WeightedAverageCost(stockQty, product.Cost, qty, unitCost)
	if err := l.productRepo.UpdateCost(product.ID, newCost); err != nil {
		return nil, fmt.Errorf("ledger: actualizar costo: %w", err)
	}
	product.Cost = newCost
	return l.appendDelta(ctx, key, latest, qty, date)
}

// adjust ajuste: positivo como entrada al costo actual (o el indicado), negativo como salida.
func (l ledger) adjust(ctx context.Context, product *entity.Product, key entity.StockKey, delta decimal.Decimal, unitCost *decimal.Decimal, date time.Time) (*entity.StockSnapshotRecord, error) {
	if delta.IsPositive() {
		cost := product.Cost
		if unitCost != nil {
			cost = *unitCost
		}
		return l.receive(ctx, product, key, delta, cost, date)
	}
	return l.post(ctx, key, delta, date)
}

func (l ledger) lock(ctx context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error) {
	latest, err := l.snapshotRepo.LatestForUpdate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("ledger: bloquear serie: %w", err)
	}
	return latest, nil
}

func (l ledger) appendDelta(ctx context.Context, key entity.StockKey, latest *entity.StockSnapshotRecord, delta decimal.Decimal, date time.Time) (*entity.StockSnapshotRecord, error) {
	current := decimal.Zero
	if latest != nil {
		if date.Before(latest.DateProjected) {
			return nil, fmt.Errorf("%w: la fecha proyectada %s es anterior al último registro (%s)",
				domain.ErrInvalidInput, date.Format(time.RFC3339), latest.DateProjected.Format(time.RFC3339))
		}
		current = latest.Qty
	}
	newQty := current.Add(delta)
	if newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	rec := &entity.StockSnapshotRecord{
		ProductID:     key.ProductID,
		WarehouseID:   key.WarehouseID,
		AttributesKey: key.AttributesKey,
		PartnerID:     key.PartnerID,
		DateProjected: date,
		Qty:           newQty,
		CreatedBy:     l.userID,
	}
	if err := l.snapshotRepo.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("ledger: agregar registro: %w", err)
	}
	return rec, nil
}
