package repository

import (
	"context"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// HUFilter filtro explícito de unidades de manipulación. Los campos en cero no filtran.
type HUFilter struct {
	WarehouseID  int64
	LocatorID    int64
	ProductID    int64    // solo unidades que contienen el producto
	Statuses     []string // vacío = cualquier estado
	TopLevelOnly bool
}

// HUWithStorage unidad con las cantidades por producto de todo su árbol (incluye hijas).
type HUWithStorage struct {
	HU       entity.HandlingUnit
	Storages []entity.HUProductStorage
}

// HandlingUnitRepository define el puerto de persistencia de unidades de manipulación.
type HandlingUnitRepository interface {
	Create(ctx context.Context, hu *entity.HandlingUnit) error
	GetByID(ctx context.Context, id int64) (*entity.HandlingUnit, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// SetProductStorage crea o reemplaza la cantidad de un producto en la unidad.
	SetProductStorage(ctx context.Context, storage *entity.HUProductStorage) error
	List(ctx context.Context, filter HUFilter, limit, offset int) ([]*entity.HandlingUnit, error)
	// ListWithStorage unidades del filtro con sus cantidades agregadas por producto.
	// Si filter.ProductID > 0 solo se devuelven las cantidades de ese producto.
	ListWithStorage(ctx context.Context, filter HUFilter) ([]HUWithStorage, error)
}
