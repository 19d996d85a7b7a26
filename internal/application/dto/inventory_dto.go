package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockChangeRequest body para POST /api/stock/changes.
type StockChangeRequest struct {
	Type            string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	ProductID       int64            `json:"product_id"`
	WarehouseID     int64            `json:"warehouse_id,omitempty"`
	FromWarehouseID int64            `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   int64            `json:"to_warehouse_id,omitempty"`
	AttributesKey   string           `json:"attributes_key,omitempty"`
	PartnerID       int64            `json:"partner_id,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	DateProjected   *time.Time       `json:"date_projected,omitempty"`
}

// StockRecordResponse registro del libro de stock.
type StockRecordResponse struct {
	SeqNo         int64           `json:"seq_no"`
	ProductID     int64           `json:"product_id"`
	WarehouseID   int64           `json:"warehouse_id"`
	AttributesKey string          `json:"attributes_key"`
	PartnerID     int64           `json:"partner_id"`
	DateProjected time.Time       `json:"date_projected"`
	Qty           decimal.Decimal `json:"qty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// StockRecordListResponse lista paginada de existencias actuales.
type StockRecordListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// AvailabilityQueryRequest una consulta de disponibilidad. PartnerID 0 = cualquier socio;
// WarehouseID 0 = todas las bodegas.
type AvailabilityQueryRequest struct {
	ProductID     int64  `json:"product_id"`
	AttributesKey string `json:"attributes_key,omitempty"`
	WarehouseID   int64  `json:"warehouse_id,omitempty"`
	PartnerID     int64  `json:"partner_id,omitempty"`
}

// AvailabilityRequest body para POST /api/stock/availability.
// AddToPredefinedBuckets nil = true. IncludeAnyPartner agrega a cada consulta de socio
// la consulta equivalente de "cualquier socio".
type AvailabilityRequest struct {
	Queries                []AvailabilityQueryRequest `json:"queries"`
	AddToPredefinedBuckets *bool                      `json:"add_to_predefined_buckets,omitempty"`
	IncludeAnyPartner      bool                       `json:"include_any_partner,omitempty"`
}

// AvailabilityGroupResponse cantidad disponible de un bucket.
type AvailabilityGroupResponse struct {
	ProductID     int64           `json:"product_id"`
	AttributesKey string          `json:"attributes_key"`
	WarehouseID   int64           `json:"warehouse_id"`
	PartnerID     int64           `json:"partner_id"`
	Qty           decimal.Decimal `json:"qty"`
	Implicit      bool            `json:"implicit,omitempty"`
}

// AvailabilityResponse salida del cálculo de disponibilidad.
type AvailabilityResponse struct {
	Groups    []AvailabilityGroupResponse `json:"groups"`
	ByPartner map[int64]decimal.Decimal   `json:"by_partner"`
	QtySum    decimal.Decimal             `json:"qty_sum"`
}

// CreateInventoryRequest body para POST /api/inventories.
type CreateInventoryRequest struct {
	WarehouseID  int64      `json:"warehouse_id" validate:"required"`
	DocumentDate *time.Time `json:"document_date,omitempty"`
}

// CountLinesFromHURequest body para POST /api/inventories/:id/count-lines-from-hu.
type CountLinesFromHURequest struct {
	LocatorID int64 `json:"locator_id,omitempty"`
	ProductID int64 `json:"product_id,omitempty"`
}

// CountLinesFromHUResponse número de líneas creadas o actualizadas.
type CountLinesFromHUResponse struct {
	Lines int `json:"lines"`
}

// UpdateCountedQtyRequest body para PATCH /api/inventories/:id/lines/:lineId.
type UpdateCountedQtyRequest struct {
	QtyCount decimal.Decimal `json:"qty_count"`
}

// ProcessInventoryResponse ajustes publicados al procesar el inventario.
type ProcessInventoryResponse struct {
	Adjustments int `json:"adjustments"`
}

// InventoryLineResponse línea de conteo.
type InventoryLineResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	LocatorID     int64           `json:"locator_id"`
	HUID          int64           `json:"hu_id,omitempty"`
	AttributesKey string          `json:"attributes_key"`
	QtyBook       decimal.Decimal `json:"qty_book"`
	QtyCount      decimal.Decimal `json:"qty_count"`
	UnitMeasure   string          `json:"unit_measure"`
}

// InventoryResponse documento de toma física con sus líneas.
type InventoryResponse struct {
	ID           int64                   `json:"id"`
	CompanyID    string                  `json:"company_id"`
	WarehouseID  int64                   `json:"warehouse_id"`
	DocumentDate time.Time               `json:"document_date"`
	Processed    bool                    `json:"processed"`
	ProcessedAt  *time.Time              `json:"processed_at,omitempty"`
	Lines        []InventoryLineResponse `json:"lines"`
}
