// Package availability expone el cálculo de stock disponible para prometer (ATP).
package availability

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain"
	atp "github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// UseCase valida la multiconsulta, lee los snapshots una sola vez y agrega por bucket.
type UseCase struct {
	reader      repository.StockSnapshotReader
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(reader repository.StockSnapshotReader, productRepo repository.ProductRepository, log zerolog.Logger) *UseCase {
	return &UseCase{reader: reader, productRepo: productRepo, log: log}
}

// ComputeAvailableStock calcula la cantidad disponible por bucket de socio.
// Errores de validación (*availability.ValidationError) se devuelven antes de acceder al almacén.
// Los productos deben pertenecer a companyID (domain.ErrNotFound / domain.ErrForbidden).
func (uc *UseCase) ComputeAvailableStock(ctx context.Context, companyID string, mq atp.MultiQuery) (atp.Result, error) {
	if err := mq.Validate(); err != nil {
		return atp.Result{}, err
	}
	if err := uc.checkOwnership(companyID, mq.Queries()); err != nil {
		return atp.Result{}, err
	}

	records, err := uc.reader.LatestRecords(ctx, mq.Queries())
	if err != nil {
		return atp.Result{}, fmt.Errorf("availability: leer snapshots: %w", err)
	}
	res := atp.Aggregate(records, mq)

	uc.log.Debug().
		Str("company_id", companyID).
		Int("queries", len(mq.Queries())).
		Int("records", len(records)).
		Bool("add_to_predefined_buckets", mq.AddToPredefinedBuckets()).
		Str("qty_sum", res.QtySum().String()).
		Msg("disponibilidad calculada")
	return res, nil
}

// ComputeAvailableQtySum devuelve solo la cantidad física total (cada registro una vez).
func (uc *UseCase) ComputeAvailableQtySum(ctx context.Context, companyID string, mq atp.MultiQuery) (decimal.Decimal, error) {
	res, err := uc.ComputeAvailableStock(ctx, companyID, mq)
	if err != nil {
		return decimal.Zero, err
	}
	return res.QtySum(), nil
}

func (uc *UseCase) checkOwnership(companyID string, queries []atp.Query) error {
	checked := make(map[int64]struct{}, len(queries))
	for _, q := range queries {
		if _, ok := checked[q.ProductID()]; ok {
			continue
		}
		checked[q.ProductID()] = struct{}{}
		product, err := uc.productRepo.GetByID(q.ProductID())
		if err != nil {
			return fmt.Errorf("availability: obtener producto: %w", err)
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return domain.ErrForbidden
		}
	}
	return nil
}
