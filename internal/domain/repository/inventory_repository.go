package repository

import (
	"context"
	"time"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// InventoryRepository documentos de toma física y sus líneas de conteo.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	// GetForUpdate bloquea el documento (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Inventory, error)
	MarkProcessed(ctx context.Context, id int64, at time.Time) error

	ListLines(ctx context.Context, inventoryID int64) ([]*entity.InventoryLine, error)
	GetLine(ctx context.Context, inventoryID, lineID int64) (*entity.InventoryLine, error)
	GetLineByHUAndProduct(ctx context.Context, inventoryID, huID, productID int64) (*entity.InventoryLine, error)
	CreateLine(ctx context.Context, line *entity.InventoryLine) error
	// UpdateLine actualiza ubicación, cantidades y unidad de medida de la línea.
	UpdateLine(ctx context.Context, line *entity.InventoryLine) error
}
