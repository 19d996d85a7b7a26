package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateHandlingUnitRequest entrada para registrar una unidad de manipulación.
type CreateHandlingUnitRequest struct {
	Value       string `json:"value" validate:"required,max=60"`
	WarehouseID int64  `json:"warehouse_id" validate:"required"`
	LocatorID   int64  `json:"locator_id" validate:"required"`
	ParentID    int64  `json:"parent_id,omitempty"`
	Status      string `json:"status" validate:"omitempty,oneof=planning active picked issued destroyed"`
}

// UpdateHandlingUnitStatusRequest body para PATCH /api/handling-units/:id/status.
type UpdateHandlingUnitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planning active picked issued destroyed"`
}

// SetHUStorageRequest cantidad de un producto dentro de la unidad.
type SetHUStorageRequest struct {
	ProductID   int64           `json:"product_id" validate:"required"`
	Qty         decimal.Decimal `json:"qty"`
	UnitMeasure string          `json:"unit_measure"`
}

// HandlingUnitResponse salida de una unidad de manipulación.
type HandlingUnitResponse struct {
	ID          int64     `json:"id"`
	Value       string    `json:"value"`
	WarehouseID int64     `json:"warehouse_id"`
	LocatorID   int64     `json:"locator_id"`
	ParentID    int64     `json:"parent_id,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HandlingUnitListResponse lista paginada de unidades.
type HandlingUnitListResponse struct {
	Items []HandlingUnitResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
