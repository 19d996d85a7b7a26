package availability

import "github.com/shopspring/decimal"

// ResultGroup cantidad disponible de un bucket. Implicit marca el grupo "cualquier socio"
// agregado cuando addToPredefinedBuckets es false y ninguna consulta lo pedía.
type ResultGroup struct {
	ProductID     int64
	AttributesKey AttributesKey
	WarehouseID   int64
	PartnerID     int64
	Qty           decimal.Decimal
	Implicit      bool
}

// Result grupos en el orden de las consultas (los implícitos al final) y la suma física.
type Result struct {
	groups []ResultGroup
	qtySum decimal.Decimal
}

// Groups devuelve una copia de los grupos.
func (r Result) Groups() []ResultGroup {
	return append([]ResultGroup(nil), r.groups...)
}

// QtySum cantidad física total: cada registro de stock se cuenta una sola vez, y el
// registro "cualquier socio" se omite si ya está incluido en el de algún socio consultado.
func (r Result) QtySum() decimal.Decimal {
	return r.qtySum
}

// ByPartner suma las cantidades de los grupos por socio. Mezcla productos, atributos y
// bodegas, así que solo tiene sentido cuando la multiconsulta es de un único producto y atributos.
func (r Result) ByPartner() map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal, len(r.groups))
	for _, g := range r.groups {
		out[g.PartnerID] = out[g.PartnerID].Add(g.Qty)
	}
	return out
}
