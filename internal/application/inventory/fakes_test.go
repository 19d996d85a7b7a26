package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// Repositorios en memoria para probar los casos de uso sin base de datos.

type fakeSnapshots struct {
	seq     int64
	records []entity.StockSnapshotRecord
}

func (f *fakeSnapshots) Latest(_ context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error) {
	var latest *entity.StockSnapshotRecord
	for i := range f.records {
		r := f.records[i]
		if r.Key() != key {
			continue
		}
		if latest == nil || r.After(*latest) {
			latest = &r
		}
	}
	return latest, nil
}

func (f *fakeSnapshots) LatestForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockSnapshotRecord, error) {
	return f.Latest(ctx, key)
}

func (f *fakeSnapshots) Append(_ context.Context, rec *entity.StockSnapshotRecord) error {
	f.seq++
	rec.SeqNo = f.seq
	rec.CreatedAt = time.Now()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeSnapshots) qty(key entity.StockKey) decimal.Decimal {
	r, _ := f.Latest(context.Background(), key)
	if r == nil {
		return decimal.Zero
	}
	return r.Qty
}

type fakeProducts struct {
	byID map[int64]*entity.Product
}

func (f *fakeProducts) Create(p *entity.Product) error { f.byID[p.ID] = p; return nil }
func (f *fakeProducts) GetByID(id int64) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProducts) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProducts) Update(p *entity.Product) error { f.byID[p.ID] = p; return nil }
func (f *fakeProducts) UpdateCost(id int64, cost decimal.Decimal) error {
	if p, ok := f.byID[id]; ok {
		p.Cost = cost
	}
	return nil
}
func (f *fakeProducts) ListByCompany(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProducts) Delete(id int64) error                                     { delete(f.byID, id); return nil }

type fakeWarehouses struct {
	byID map[int64]*entity.Warehouse
}

func (f *fakeWarehouses) Create(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }
func (f *fakeWarehouses) GetByID(id int64) (*entity.Warehouse, error) {
	return f.byID[id], nil
}
func (f *fakeWarehouses) Update(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }
func (f *fakeWarehouses) ListByCompany(string, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouses) Delete(id int64) error { delete(f.byID, id); return nil }

type fakeLocators struct {
	byID map[int64]*entity.Locator
}

func (f *fakeLocators) Create(l *entity.Locator) error { f.byID[l.ID] = l; return nil }
func (f *fakeLocators) GetByID(id int64) (*entity.Locator, error) {
	return f.byID[id], nil
}
func (f *fakeLocators) ListByWarehouse(int64) ([]*entity.Locator, error) { return nil, nil }

type fakeInventories struct {
	byID   map[int64]*entity.Inventory
	lines  []*entity.InventoryLine
	nextID int64
}

func (f *fakeInventories) Create(_ context.Context, inv *entity.Inventory) error {
	f.nextID++
	inv.ID = f.nextID
	f.byID[inv.ID] = inv
	return nil
}
func (f *fakeInventories) GetByID(_ context.Context, id int64) (*entity.Inventory, error) {
	return f.byID[id], nil
}
func (f *fakeInventories) GetForUpdate(ctx context.Context, id int64) (*entity.Inventory, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeInventories) MarkProcessed(_ context.Context, id int64, at time.Time) error {
	inv := f.byID[id]
	inv.Processed = true
	inv.ProcessedAt = &at
	return nil
}
func (f *fakeInventories) ListLines(_ context.Context, inventoryID int64) ([]*entity.InventoryLine, error) {
	var out []*entity.InventoryLine
	for _, l := range f.lines {
		if l.InventoryID == inventoryID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeInventories) GetLine(_ context.Context, inventoryID, lineID int64) (*entity.InventoryLine, error) {
	for _, l := range f.lines {
		if l.InventoryID == inventoryID && l.ID == lineID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeInventories) GetLineByHUAndProduct(_ context.Context, inventoryID, huID, productID int64) (*entity.InventoryLine, error) {
	for _, l := range f.lines {
		if l.InventoryID == inventoryID && l.HUID == huID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeInventories) CreateLine(_ context.Context, line *entity.InventoryLine) error {
	line.ID = int64(len(f.lines) + 1)
	cp := *line
	f.lines = append(f.lines, &cp)
	return nil
}
func (f *fakeInventories) UpdateLine(_ context.Context, line *entity.InventoryLine) error {
	for i, l := range f.lines {
		if l.ID == line.ID {
			cp := *line
			f.lines[i] = &cp
		}
	}
	return nil
}

type fakeHUs struct {
	units []repository.HUWithStorage
}

func (f *fakeHUs) Create(_ context.Context, hu *entity.HandlingUnit) error {
	f.units = append(f.units, repository.HUWithStorage{HU: *hu})
	return nil
}
func (f *fakeHUs) GetByID(_ context.Context, id int64) (*entity.HandlingUnit, error) {
	for _, u := range f.units {
		if u.HU.ID == id {
			hu := u.HU
			return &hu, nil
		}
	}
	return nil, nil
}
func (f *fakeHUs) UpdateStatus(context.Context, int64, string) error                 { return nil }
func (f *fakeHUs) SetProductStorage(context.Context, *entity.HUProductStorage) error { return nil }
func (f *fakeHUs) List(context.Context, repository.HUFilter, int, int) ([]*entity.HandlingUnit, error) {
	return nil, nil
}
func (f *fakeHUs) ListWithStorage(_ context.Context, filter repository.HUFilter) ([]repository.HUWithStorage, error) {
	var out []repository.HUWithStorage
	for _, u := range f.units {
		if filter.WarehouseID > 0 && u.HU.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.LocatorID > 0 && u.HU.LocatorID != filter.LocatorID {
			continue
		}
		if filter.TopLevelOnly && !u.HU.IsTopLevel() {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, u.HU.Status) {
			continue
		}
		var storages []entity.HUProductStorage
		for _, s := range u.Storages {
			if filter.ProductID > 0 && s.ProductID != filter.ProductID {
				continue
			}
			storages = append(storages, s)
		}
		if len(storages) == 0 {
			continue
		}
		out = append(out, repository.HUWithStorage{HU: u.HU, Storages: storages})
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (f *fakeCompanies) GetByID(id string) (*entity.Company, error) { return f.byID[id], nil }

type fakeTx struct {
	snapshots   *fakeSnapshots
	products    *fakeProducts
	inventories *fakeInventories
	hus         *fakeHUs
}

func (t *fakeTx) Run(_ context.Context, fn func(repository.StockSnapshotRepository, repository.ProductRepository) error) error {
	return fn(t.snapshots, t.products)
}

func (t *fakeTx) RunCount(_ context.Context, fn func(
	repository.InventoryRepository,
	repository.HandlingUnitRepository,
	repository.StockSnapshotRepository,
	repository.ProductRepository,
) error) error {
	return fn(t.inventories, t.hus, t.snapshots, t.products)
}

type fakeGenerator struct {
	sheet CountSheet
}

func (g *fakeGenerator) GenerateCountSheet(_ context.Context, sheet CountSheet) ([]byte, error) {
	g.sheet = sheet
	return []byte("%PDF-fake"), nil
}

const (
	companyID   = "company-1"
	otherCompID = "company-2"
	userID      = "user-1"
)

// fixture bodega 1 y producto 10 de company-1.
type fixture struct {
	tx         *fakeTx
	warehouses *fakeWarehouses
	locators   *fakeLocators
	companies  *fakeCompanies
	generator  *fakeGenerator
}

func newFixture() *fixture {
	products := &fakeProducts{byID: map[int64]*entity.Product{
		10: {ID: 10, CompanyID: companyID, SKU: "SKU-10", Name: "Tornillo", UnitMeasure: "UND", Cost: decimal.NewFromInt(2)},
		11: {ID: 11, CompanyID: companyID, SKU: "SKU-11", Name: "Tuerca", UnitMeasure: "UND"},
		20: {ID: 20, CompanyID: otherCompID, SKU: "X", Name: "Ajeno"},
	}}
	return &fixture{
		tx: &fakeTx{
			snapshots:   &fakeSnapshots{},
			products:    products,
			inventories: &fakeInventories{byID: map[int64]*entity.Inventory{}},
			hus:         &fakeHUs{},
		},
		warehouses: &fakeWarehouses{byID: map[int64]*entity.Warehouse{
			1: {ID: 1, CompanyID: companyID, Name: "Principal"},
			2: {ID: 2, CompanyID: companyID, Name: "Secundaria"},
			9: {ID: 9, CompanyID: otherCompID, Name: "Ajena"},
		}},
		locators: &fakeLocators{byID: map[int64]*entity.Locator{
			100: {ID: 100, WarehouseID: 1, Value: "A-01"},
			101: {ID: 101, WarehouseID: 1, Value: "A-02"},
		}},
		companies: &fakeCompanies{byID: map[string]*entity.Company{
			companyID: {ID: companyID, Name: "Acme"},
		}},
		generator: &fakeGenerator{},
	}
}

func stockKey(productID, warehouseID, partnerID int64) entity.StockKey {
	return entity.StockKey{ProductID: productID, WarehouseID: warehouseID, PartnerID: partnerID}
}

var errStore = errors.New("conexión rechazada")

// brokenProducts falla en cada lectura, como un pool sin conexión.
type brokenProducts struct {
	*fakeProducts
}

func (brokenProducts) GetByID(int64) (*entity.Product, error) { return nil, errStore }

type brokenWarehouses struct {
	*fakeWarehouses
}

func (brokenWarehouses) GetByID(int64) (*entity.Warehouse, error) { return nil, errStore }
