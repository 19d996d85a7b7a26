package repository

import "github.com/jhoicas/atp-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error)
	Delete(id int64) error
}

// LocatorRepository ubicaciones dentro de una bodega.
type LocatorRepository interface {
	Create(locator *entity.Locator) error
	GetByID(id int64) (*entity.Locator, error)
	ListByWarehouse(warehouseID int64) ([]*entity.Locator, error)
}
