package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartnerIDAny identifica el bucket "cualquier socio": stock aún no atribuido a un cliente.
const PartnerIDAny int64 = 0

// StockSnapshotRecord hecho inmutable de stock para (producto, atributos, bodega, socio).
// Se agrega uno nuevo cada vez que cambia el stock; nunca se actualiza (tabla append-only).
type StockSnapshotRecord struct {
	SeqNo         int64 // secuencia monotónica (> 0), desempate determinístico
	ProductID     int64
	WarehouseID   int64
	AttributesKey string
	PartnerID     int64 // 0 = cualquier socio
	DateProjected time.Time
	Qty           decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}

// IsAnyPartner indica si el registro pertenece al bucket "cualquier socio".
func (r StockSnapshotRecord) IsAnyPartner() bool {
	return r.PartnerID == PartnerIDAny
}

// After informa si r es estrictamente posterior a other: primero por fecha proyectada,
// luego por número de secuencia.
func (r StockSnapshotRecord) After(other StockSnapshotRecord) bool {
	if !r.DateProjected.Equal(other.DateProjected) {
		return r.DateProjected.After(other.DateProjected)
	}
	return r.SeqNo > other.SeqNo
}

// StockKey identifica la serie de snapshots de un producto en una bodega para un socio.
type StockKey struct {
	ProductID     int64
	WarehouseID   int64
	AttributesKey string
	PartnerID     int64
}

// Key devuelve la clave de la serie a la que pertenece el registro.
func (r StockSnapshotRecord) Key() StockKey {
	return StockKey{
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		AttributesKey: r.AttributesKey,
		PartnerID:     r.PartnerID,
	}
}

// Tipos de cambio de stock que generan registros en el libro.
const (
	StockChangeIN         = "IN"
	StockChangeOUT        = "OUT"
	StockChangeADJUSTMENT = "ADJUSTMENT"
	StockChangeTRANSFER   = "TRANSFER"
)
