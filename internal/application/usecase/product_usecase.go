package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

const defaultUnitMeasure = "UND"

// ProductUseCase mantiene el catálogo de productos de una empresa. El costo no se
// edita aquí: lo recalcula inventory.StockChangeUseCase con cada entrada.
type ProductUseCase struct {
	repo repository.ProductRepository
}

func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create da de alta un producto con costo 0. El SKU es único por empresa.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	}
	dup, err := uc.repo.GetByCompanyAndSKU(companyID, sku)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, sku)
	}

	unit := strings.ToUpper(strings.TrimSpace(in.UnitMeasure))
	if unit == "" {
		unit = defaultUnitMeasure
	}
	now := time.Now()
	p := &entity.Product{
		CompanyID:   companyID,
		SKU:         sku,
		Name:        name,
		UnitMeasure: unit,
		Cost:        decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return productDTO(p), nil
}

// GetByID devuelve domain.ErrNotFound también cuando el producto es de otra empresa.
func (uc *ProductUseCase) GetByID(companyID string, id int64) (*dto.ProductResponse, error) {
	p, err := uc.owned(companyID, id)
	if err != nil {
		return nil, err
	}
	return productDTO(p), nil
}

func (uc *ProductUseCase) Update(companyID string, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.owned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.UnitMeasure != nil && strings.TrimSpace(*in.UnitMeasure) != "" {
		p.UnitMeasure = strings.ToUpper(strings.TrimSpace(*in.UnitMeasure))
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return productDTO(p), nil
}

func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, len(products)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for i, p := range products {
		out.Items[i] = *productDTO(p)
	}
	return out, nil
}

// Delete falla con ErrConflict (desde el repositorio) si el producto ya tiene movimientos.
func (uc *ProductUseCase) Delete(companyID string, id int64) error {
	if _, err := uc.owned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) owned(companyID string, id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return p, nil
}

func productDTO(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		UnitMeasure: p.UnitMeasure,
		Cost:        p.Cost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
