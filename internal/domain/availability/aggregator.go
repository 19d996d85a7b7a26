package availability

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// Aggregate calcula la cantidad disponible por bucket para la multiconsulta.
//
// Para cada consulta de un socio y cada bodega en alcance se toma el último registro del
// socio y el último registro "cualquier socio" (orden: fecha proyectada, luego SeqNo).
// El registro "cualquier socio" solo se suma al del socio si es estrictamente posterior;
// si es igual o anterior se asume ya incluido. Las consultas con socio 0 solo ven
// registros de socio 0. Registros con SeqNo <= 0 se ignoran.
// Con la misma fecha proyectada decide el SeqNo: un "cualquier socio" insertado después del
// registro del socio se suma.
//
// No valida mq: el llamador debe haberla construido con los builders o llamado Validate.
func Aggregate(records []entity.StockSnapshotRecord, mq MultiQuery) Result {
	idx := newLatestIndex(records)

	groups := make([]ResultGroup, 0, len(mq.queries)+1)
	for _, q := range mq.queries {
		groups = append(groups, ResultGroup{
			ProductID:     q.productID,
			AttributesKey: q.attributesKey,
			WarehouseID:   q.warehouseID,
			PartnerID:     q.partnerID,
			Qty:           idx.qtyForQuery(q, mq.addToPredefinedBuckets),
		})
	}
	if !mq.addToPredefinedBuckets {
		groups = append(groups, idx.implicitAnyGroups(mq.queries)...)
	}

	return Result{groups: groups, qtySum: idx.qtySum(mq.queries)}
}

// latestIndex último registro por serie (producto, atributos, bodega, socio).
type latestIndex struct {
	latest     map[entity.StockKey]entity.StockSnapshotRecord
	warehouses map[scope][]int64 // bodegas con registros por (producto, atributos); scope.warehouseID = 0
}

func newLatestIndex(records []entity.StockSnapshotRecord) *latestIndex {
	idx := &latestIndex{
		latest:     make(map[entity.StockKey]entity.StockSnapshotRecord, len(records)),
		warehouses: make(map[scope][]int64),
	}
	seenWarehouse := make(map[scope]map[int64]struct{})
	for _, r := range records {
		if r.SeqNo <= 0 {
			continue
		}
		k := r.Key()
		if cur, ok := idx.latest[k]; !ok || r.After(cur) {
			idx.latest[k] = r
		}
		s := scope{productID: r.ProductID, attributesKey: AttributesKey(r.AttributesKey)}
		if seenWarehouse[s] == nil {
			seenWarehouse[s] = make(map[int64]struct{})
		}
		if _, ok := seenWarehouse[s][r.WarehouseID]; !ok {
			seenWarehouse[s][r.WarehouseID] = struct{}{}
			idx.warehouses[s] = append(idx.warehouses[s], r.WarehouseID)
		}
	}
	for s := range idx.warehouses {
		whs := idx.warehouses[s]
		sort.Slice(whs, func(i, j int) bool { return whs[i] < whs[j] })
	}
	return idx
}

// warehousesFor bodegas a evaluar para el alcance: la indicada o todas las que tienen registros.
func (idx *latestIndex) warehousesFor(s scope) []int64 {
	if s.warehouseID != 0 {
		return []int64{s.warehouseID}
	}
	return idx.warehouses[scope{productID: s.productID, attributesKey: s.attributesKey}]
}

func (idx *latestIndex) get(s scope, warehouseID, partnerID int64) (entity.StockSnapshotRecord, bool) {
	r, ok := idx.latest[entity.StockKey{
		ProductID:     s.productID,
		WarehouseID:   warehouseID,
		AttributesKey: string(s.attributesKey),
		PartnerID:     partnerID,
	}]
	return r, ok
}

// anyIsAdditional informa si la cantidad "cualquier socio" no está contenida en el registro del socio.
func anyIsAdditional(anyRec, partnerRec entity.StockSnapshotRecord, hasPartner bool) bool {
	return !hasPartner || anyRec.After(partnerRec)
}

func (idx *latestIndex) qtyForQuery(q Query, foldAny bool) decimal.Decimal {
	s := q.scope()
	total := decimal.Zero
	for _, wh := range idx.warehousesFor(s) {
		anyRec, hasAny := idx.get(s, wh, entity.PartnerIDAny)
		if q.IsAnyPartner() {
			if hasAny {
				total = total.Add(anyRec.Qty)
			}
			continue
		}
		partnerRec, hasPartner := idx.get(s, wh, q.partnerID)
		if hasPartner {
			total = total.Add(partnerRec.Qty)
		}
		if foldAny && hasAny && anyIsAdditional(anyRec, partnerRec, hasPartner) {
			total = total.Add(anyRec.Qty)
		}
	}
	return total
}

// implicitAnyGroups un grupo "cualquier socio" por alcance con consultas de socio, con los
// registros "cualquier socio" de las bodegas que ninguna consulta de socio 0 (misma bodega o
// bodega 0) ni un grupo implícito anterior ya cuentan. Sin registros no se emite grupo.
func (idx *latestIndex) implicitAnyGroups(queries []Query) []ResultGroup {
	covered := make(map[scope]struct{})
	for _, q := range queries {
		if !q.IsAnyPartner() {
			continue
		}
		s := q.scope()
		for _, wh := range idx.warehousesFor(s) {
			covered[scope{productID: s.productID, attributesKey: s.attributesKey, warehouseID: wh}] = struct{}{}
		}
	}

	var groups []ResultGroup
	emitted := make(map[scope]struct{})
	for _, q := range queries {
		if q.IsAnyPartner() {
			continue
		}
		s := q.scope()
		if _, ok := emitted[s]; ok {
			continue
		}
		emitted[s] = struct{}{}

		found := false
		qty := decimal.Zero
		for _, wh := range idx.warehousesFor(s) {
			concrete := scope{productID: s.productID, attributesKey: s.attributesKey, warehouseID: wh}
			if _, ok := covered[concrete]; ok {
				continue
			}
			covered[concrete] = struct{}{}
			if anyRec, ok := idx.get(s, wh, entity.PartnerIDAny); ok {
				found = true
				qty = qty.Add(anyRec.Qty)
			}
		}
		if !found {
			continue
		}
		groups = append(groups, ResultGroup{
			ProductID:     s.productID,
			AttributesKey: s.attributesKey,
			WarehouseID:   s.warehouseID,
			PartnerID:     entity.PartnerIDAny,
			Qty:           qty,
			Implicit:      true,
		})
	}
	return groups
}

// qtySum cuenta cada registro una vez: los de los socios consultados más los "cualquier
// socio" que ningún registro de socio consultado ya incluye.
func (idx *latestIndex) qtySum(queries []Query) decimal.Decimal {
	partnerRecs := make(map[entity.StockKey]entity.StockSnapshotRecord)
	anyRecs := make(map[entity.StockKey]entity.StockSnapshotRecord)
	included := make(map[entity.StockKey]struct{})

	for _, q := range queries {
		s := q.scope()
		for _, wh := range idx.warehousesFor(s) {
			anyRec, hasAny := idx.get(s, wh, entity.PartnerIDAny)
			if hasAny {
				anyRecs[anyRec.Key()] = anyRec
			}
			if q.IsAnyPartner() {
				continue
			}
			partnerRec, hasPartner := idx.get(s, wh, q.partnerID)
			if !hasPartner {
				continue
			}
			partnerRecs[partnerRec.Key()] = partnerRec
			if hasAny && !anyIsAdditional(anyRec, partnerRec, true) {
				included[anyRec.Key()] = struct{}{}
			}
		}
	}

	sum := decimal.Zero
	for _, r := range partnerRecs {
		sum = sum.Add(r.Qty)
	}
	for k, r := range anyRecs {
		if _, ok := included[k]; ok {
			continue
		}
		sum = sum.Add(r.Qty)
	}
	return sum
}
