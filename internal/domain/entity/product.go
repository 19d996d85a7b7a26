package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es promedio ponderado calculado desde los cambios de stock de entrada.
type Product struct {
	ID          int64
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	UnitMeasure string
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
