package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

type memCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (m *memCompanies) Create(c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCompanies) GetByID(id string) (*entity.Company, error) { return m.byID[id], nil }

func (m *memCompanies) GetByNIT(taxID string) (*entity.Company, error) {
	for _, c := range m.byID {
		if c.NIT == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCompanies) Update(c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}

type memProducts struct {
	repository.ProductRepository
	byID    map[int64]*entity.Product
	nextID  int64
	deleted []int64
}

func (m *memProducts) Create(p *entity.Product) error {
	m.nextID++
	p.ID = m.nextID
	m.byID[p.ID] = p
	return nil
}

func (m *memProducts) GetByID(id int64) (*entity.Product, error) { return m.byID[id], nil }

func (m *memProducts) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range m.byID {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(p *entity.Product) error { return nil }

func (m *memProducts) Delete(id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type memWarehouses struct {
	repository.WarehouseRepository
	byID map[int64]*entity.Warehouse
}

func (m *memWarehouses) GetByID(id int64) (*entity.Warehouse, error) { return m.byID[id], nil }

type memLocators struct {
	repository.LocatorRepository
	created []*entity.Locator
}

func (m *memLocators) Create(l *entity.Locator) error {
	l.ID = int64(len(m.created) + 1)
	m.created = append(m.created, l)
	return nil
}

func TestCompanyCreate_NormalizaNIT(t *testing.T) {
	repo := &memCompanies{byID: map[string]*entity.Company{}}
	uc := NewCompanyUseCase(repo)

	out, err := uc.Create(dto.CreateCompanyRequest{Name: " Acme S.A.S. ", NIT: "800.197.268"})
	require.NoError(t, err)
	assert.Equal(t, "800197268-4", out.NIT)
	assert.Equal(t, "Acme S.A.S.", out.Name)
	assert.Equal(t, "active", out.Status)

	_, err = uc.Create(dto.CreateCompanyRequest{Name: "Otra", NIT: "8001972684"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "mismo NIT con dígito de verificación")
}

func TestCompanyCreate_Rechazos(t *testing.T) {
	uc := NewCompanyUseCase(&memCompanies{byID: map[string]*entity.Company{}})

	_, err := uc.Create(dto.CreateCompanyRequest{Name: "", NIT: "800197268"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateCompanyRequest{Name: "Acme", NIT: "12-ab"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyUpdate(t *testing.T) {
	repo := &memCompanies{byID: map[string]*entity.Company{
		"c-1": {ID: "c-1", Name: "Acme", NIT: "800197268-4", Status: "active"},
	}}
	uc := NewCompanyUseCase(repo)

	bad := "cerrada"
	_, err := uc.Update("c-1", dto.UpdateCompanyRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	suspended := "suspended"
	out, err := uc.Update("c-1", dto.UpdateCompanyRequest{Status: &suspended})
	require.NoError(t, err)
	assert.Equal(t, "suspended", out.Status)

	_, err = uc.Update("c-9", dto.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_UnidadPorDefectoYSKUDuplicado(t *testing.T) {
	repo := &memProducts{byID: map[int64]*entity.Product{}}
	uc := NewProductUseCase(repo)

	out, err := uc.Create("c-1", dto.CreateProductRequest{SKU: "T-10", Name: "Tornillo"})
	require.NoError(t, err)
	assert.Equal(t, "UND", out.UnitMeasure)
	assert.True(t, out.Cost.IsZero())

	_, err = uc.Create("c-1", dto.CreateProductRequest{SKU: "T-10", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create("c-2", dto.CreateProductRequest{SKU: "T-10", Name: "Tornillo"})
	assert.NoError(t, err, "el SKU es único por empresa")
}

func TestProduct_DeOtraEmpresaEsNoEncontrado(t *testing.T) {
	repo := &memProducts{byID: map[int64]*entity.Product{
		7: {ID: 7, CompanyID: "c-2", SKU: "X", Name: "Ajeno"},
	}}
	uc := NewProductUseCase(repo)

	_, err := uc.GetByID("c-1", 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete("c-1", 7), domain.ErrNotFound)
	assert.Empty(t, repo.deleted)

	require.NoError(t, uc.Delete("c-2", 7))
	assert.Equal(t, []int64{7}, repo.deleted)
}

func TestCreateLocator(t *testing.T) {
	warehouses := &memWarehouses{byID: map[int64]*entity.Warehouse{
		1: {ID: 1, CompanyID: "c-1", Name: "Principal"},
	}}
	locators := &memLocators{}
	uc := NewWarehouseUseCase(warehouses, locators)

	out, err := uc.CreateLocator("c-1", 1, dto.CreateLocatorRequest{Value: " A-01-03 "})
	require.NoError(t, err)
	assert.Equal(t, "A-01-03", out.Value)
	assert.Equal(t, int64(1), out.WarehouseID)

	_, err = uc.CreateLocator("c-2", 1, dto.CreateLocatorRequest{Value: "A-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega de otra empresa")

	_, err = uc.CreateLocator("c-1", 1, dto.CreateLocatorRequest{Value: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, locators.created, 1)
}
