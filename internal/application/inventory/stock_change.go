package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// StockChangeUseCase registra cambios de stock de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER) agregando registros al libro de snapshots con la serie bloqueada.
type StockChangeUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           zerolog.Logger
	now           func() time.Time
}

// NewStockChangeUseCase construye el caso de uso.
func NewStockChangeUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log zerolog.Logger,
) *StockChangeUseCase {
	return &StockChangeUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
		now:           time.Now,
	}
}

// StockChangeInput entrada para registrar un cambio de stock.
// Para IN/OUT/ADJUSTMENT: ProductID, WarehouseID, Type, Quantity; UnitCost obligatorio en IN.
// Para TRANSFER: ProductID, FromWarehouseID, ToWarehouseID, Type=TRANSFER, Quantity.
// PartnerID 0 registra stock de "cualquier socio". DateProjected cero = ahora.
type StockChangeInput struct {
	CompanyID       string
	UserID          string
	Type            string
	ProductID       int64
	WarehouseID     int64
	FromWarehouseID int64
	ToWarehouseID   int64
	AttributesKey   string
	PartnerID       int64
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	DateProjected   time.Time
}

// RecordStockChange valida la entrada, abre una transacción, bloquea la serie afectada,
// aplica la lógica según tipo y devuelve los registros agregados al libro.
func (uc *StockChangeUseCase) RecordStockChange(ctx context.Context, input StockChangeInput) ([]*entity.StockSnapshotRecord, error) {
	if err := validateStockChange(input); err != nil {
		return nil, err
	}
	attrs, err := availability.ParseAttributesKey(input.AttributesKey)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("stock: obtener producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, input.ProductID)
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}
	warehouses := []int64{input.WarehouseID}
	if input.Type == entity.StockChangeTRANSFER {
		warehouses = []int64{input.FromWarehouseID, input.ToWarehouseID}
	}
	for _, id := range warehouses {
		wh, err := uc.warehouseRepo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("stock: obtener bodega: %w", err)
		}
		if wh == nil || wh.CompanyID != input.CompanyID {
			return nil, fmt.Errorf("%w: bodega %d", domain.ErrNotFound, id)
		}
	}

	date := input.DateProjected
	if date.IsZero() {
		date = uc.now()
	}
	key := entity.StockKey{
		ProductID:     input.ProductID,
		WarehouseID:   input.WarehouseID,
		AttributesKey: attrs.String(),
		PartnerID:     input.PartnerID,
	}

	var records []*entity.StockSnapshotRecord
	err = uc.txRunner.Run(ctx, func(
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
	) error {
		l := ledger{snapshotRepo: snapshotRepo, productRepo: productRepo, userID: input.UserID}
		switch input.Type {
		case entity.StockChangeIN:
			rec, err := l.receive(ctx, product, key, input.Quantity, *input.UnitCost, date)
			if err != nil {
				return err
			}
			records = append(records, rec)
		case entity.StockChangeOUT:
			rec, err := l.post(ctx, key, input.Quantity.Neg(), date)
			if err != nil {
				return err
			}
			records = append(records, rec)
		case entity.StockChangeADJUSTMENT:
			rec, err := l.adjust(ctx, product, key, input.Quantity, input.UnitCost, date)
			if err != nil {
				return err
			}
			records = append(records, rec)
		case entity.StockChangeTRANSFER:
			from, to := key, key
			from.WarehouseID = input.FromWarehouseID
			to.WarehouseID = input.ToWarehouseID
			// Resta en origen y suma en destino dentro de la misma transacción
			out, err := l.post(ctx, from, input.Quantity.Neg(), date)
			if err != nil {
				return err
			}
			in, err := l.post(ctx, to, input.Quantity, date)
			if err != nil {
				return err
			}
			records = append(records, out, in)
		default:
			return domain.ErrInvalidInput
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", input.CompanyID).
		Str("type", input.Type).
		Int64("product_id", input.ProductID).
		Int64("partner_id", input.PartnerID).
		Str("quantity", input.Quantity.String()).
		Int("records", len(records)).
		Msg("cambio de stock registrado")
	return records, nil
}

func validateStockChange(input StockChangeInput) error {
	if input.ProductID <= 0 || input.PartnerID < 0 {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.StockChangeIN, entity.StockChangeOUT, entity.StockChangeADJUSTMENT:
		if input.WarehouseID <= 0 || input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
		if input.Type == entity.StockChangeIN && (input.UnitCost == nil || input.UnitCost.IsNegative() || !input.Quantity.IsPositive()) {
			return domain.ErrInvalidInput
		}
		if input.Type == entity.StockChangeOUT && !input.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		if input.UnitCost != nil && input.UnitCost.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.StockChangeTRANSFER:
		if input.FromWarehouseID <= 0 || input.ToWarehouseID <= 0 {
			return domain.ErrInvalidInput
		}
		if input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
