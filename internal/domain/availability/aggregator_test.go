package availability_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

const (
	productID   int64 = 10
	warehouseID int64 = 1
	partnerA    int64 = 100
	partnerB    int64 = 200
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

type recordSet struct {
	seq     int64
	records []entity.StockSnapshotRecord
}

// add agrega un registro con el siguiente número de secuencia (orden de inserción).
func (s *recordSet) add(partnerID, warehouse int64, date time.Time, qty int64) *recordSet {
	s.seq++
	s.records = append(s.records, entity.StockSnapshotRecord{
		SeqNo:         s.seq,
		ProductID:     productID,
		WarehouseID:   warehouse,
		PartnerID:     partnerID,
		DateProjected: date,
		Qty:           decimal.NewFromInt(qty),
	})
	return s
}

func query(t *testing.T, warehouse, partnerID int64) availability.Query {
	t.Helper()
	q, err := availability.NewQuery().ProductID(productID).WarehouseID(warehouse).PartnerID(partnerID).Build()
	require.NoError(t, err)
	return q
}

func multi(t *testing.T, addToPredefined bool, qs ...availability.Query) availability.MultiQuery {
	t.Helper()
	b := availability.NewMultiQuery().AddToPredefinedBuckets(addToPredefined)
	for _, q := range qs {
		b.Query(q)
	}
	mq, err := b.Build()
	require.NoError(t, err)
	return mq
}

func assertQty(t *testing.T, expected int64, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(expected).Equal(actual), "%s: esperado %d, obtenido %s", msg, expected, actual)
}

func TestAggregate_SinRegistros_CantidadCero(t *testing.T) {
	res := availability.Aggregate(nil, multi(t, true, query(t, warehouseID, partnerA)))

	groups := res.Groups()
	require.Len(t, groups, 1)
	assertQty(t, 0, groups[0].Qty, "grupo del socio")
	assertQty(t, 0, res.QtySum(), "suma")
}

func TestAggregate_AnyAnteriorAlSocio_NoDuplica(t *testing.T) {
	rs := (&recordSet{}).
		add(entity.PartnerIDAny, warehouseID, t0, 10).
		add(partnerA, warehouseID, t0.Add(time.Hour), 10)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 10, res.Groups()[0].Qty, "el registro del socio ya incluye el de cualquier socio")
	assertQty(t, 10, res.QtySum(), "suma")
}

func TestAggregate_AnyPosteriorAlSocio_Suma(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 10).
		add(entity.PartnerIDAny, warehouseID, t0.Add(time.Hour), 10)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 20, res.Groups()[0].Qty, "stock adicional de cualquier socio")
	assertQty(t, 20, res.QtySum(), "suma")
}

func TestAggregate_MismaFecha_AnyInsertadoAntes_YaIncluido(t *testing.T) {
	rs := (&recordSet{}).
		add(entity.PartnerIDAny, warehouseID, t0, 10).
		add(partnerA, warehouseID, t0, 10)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 10, res.Groups()[0].Qty, "empate de fecha con any insertado antes")
}

func TestAggregate_MismaFecha_AnyInsertadoDespues_DesempataPorSecuencia(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 10).
		add(entity.PartnerIDAny, warehouseID, t0, 10)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 20, res.Groups()[0].Qty, "empate de fecha: gana la secuencia mayor")
}

func TestAggregate_SoloAny_SinRegistroDelSocio(t *testing.T) {
	rs := (&recordSet{}).add(entity.PartnerIDAny, warehouseID, t0, 7)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 7, res.Groups()[0].Qty, "sin registro del socio cuenta cualquier socio")
}

func TestAggregate_OtroSocioNoContribuye(t *testing.T) {
	rs := (&recordSet{}).add(partnerB, warehouseID, t0, 50)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 0, res.Groups()[0].Qty, "el stock de B no es de A")
	assertQty(t, 0, res.QtySum(), "B no fue consultado")
}

func TestAggregate_ConsultaSocioCero_SoloRegistrosCero(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 30).
		add(entity.PartnerIDAny, warehouseID, t0.Add(time.Hour), 10).
		add(partnerB, warehouseID, t0.Add(2*time.Hour), 40)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, entity.PartnerIDAny)))

	groups := res.Groups()
	require.Len(t, groups, 1)
	assertQty(t, 10, groups[0].Qty, "solo registros de socio 0")
	assertQty(t, 10, res.QtySum(), "suma")
}

func TestAggregate_DosSocios(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 10).
		add(entity.PartnerIDAny, warehouseID, t0.Add(time.Hour), 10).
		add(partnerB, warehouseID, t0.Add(2*time.Hour), 10)

	res := availability.Aggregate(rs.records, multi(t, true,
		query(t, warehouseID, partnerA),
		query(t, warehouseID, partnerB),
	))

	byPartner := res.ByPartner()
	assertQty(t, 20, byPartner[partnerA], "A recibe el stock adicional")
	assertQty(t, 10, byPartner[partnerB], "B ya lo incluye")
	assertQty(t, 20, res.QtySum(), "cada registro físico una vez")
}

func TestAggregate_UsaElUltimoRegistroDeCadaSerie(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 5).
		add(partnerA, warehouseID, t0.Add(time.Hour), 8).
		add(partnerA, warehouseID, t0.Add(-time.Hour), 99)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 8, res.Groups()[0].Qty, "último por fecha proyectada")
}

func TestAggregate_IgnoraSecuenciaNoPositiva(t *testing.T) {
	records := []entity.StockSnapshotRecord{{
		SeqNo:         0,
		ProductID:     productID,
		WarehouseID:   warehouseID,
		PartnerID:     partnerA,
		DateProjected: t0,
		Qty:           decimal.NewFromInt(10),
	}}

	res := availability.Aggregate(records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 0, res.Groups()[0].Qty, "registro sin secuencia")
}

func TestAggregate_TodasLasBodegas(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, 1, t0, 5).
		add(partnerA, 2, t0, 5).
		add(entity.PartnerIDAny, 1, t0.Add(time.Hour), 3).
		add(entity.PartnerIDAny, 2, t0.Add(-time.Hour), 4)

	res := availability.Aggregate(rs.records, multi(t, true, query(t, 0, partnerA)))

	g := res.Groups()[0]
	assert.Equal(t, int64(0), g.WarehouseID)
	assertQty(t, 13, g.Qty, "bodega 1: 5+3, bodega 2: 5 (any ya incluido)")
	assertQty(t, 13, res.QtySum(), "suma")
}

func TestAggregate_AtributosDistintosNoSeMezclan(t *testing.T) {
	rs := &recordSet{}
	rs.add(partnerA, warehouseID, t0, 10)
	rs.records[0].AttributesKey = "1-2"

	res := availability.Aggregate(rs.records, multi(t, true, query(t, warehouseID, partnerA)))

	assertQty(t, 0, res.Groups()[0].Qty, "la consulta sin atributos no ve la serie 1-2")
}

func TestAggregate_SinRepartir_AnyComoGrupoImplicito(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 10).
		add(entity.PartnerIDAny, warehouseID, t0.Add(time.Hour), 10)

	res := availability.Aggregate(rs.records, multi(t, false, query(t, warehouseID, partnerA)))

	groups := res.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, partnerA, groups[0].PartnerID)
	assertQty(t, 10, groups[0].Qty, "el socio solo ve lo suyo")
	assert.False(t, groups[0].Implicit)

	assert.Equal(t, entity.PartnerIDAny, groups[1].PartnerID)
	assert.True(t, groups[1].Implicit, "grupo agregado sin consulta")
	assertQty(t, 10, groups[1].Qty, "cualquier socio no se pierde")
	assertQty(t, 20, res.QtySum(), "suma")
}

func TestAggregate_SinRepartir_ConConsultaExplicitaDeSocioCero(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, warehouseID, t0, 10).
		add(entity.PartnerIDAny, warehouseID, t0.Add(time.Hour), 10)

	q, err := availability.ForDescriptorAndAllPossiblePartners(query(t, warehouseID, partnerA))
	require.NoError(t, err)
	mq := multi(t, false, q.Queries()...)

	res := availability.Aggregate(rs.records, mq)

	groups := res.Groups()
	require.Len(t, groups, 2, "sin grupo implícito cuando se consulta el socio 0")
	assertQty(t, 10, groups[0].Qty, "socio A")
	assertQty(t, 10, groups[1].Qty, "socio 0")
	assert.False(t, groups[1].Implicit)
}

func TestAggregate_SinRepartir_SinRegistrosAny_NoAgregaGrupo(t *testing.T) {
	rs := (&recordSet{}).add(partnerA, warehouseID, t0, 10)

	res := availability.Aggregate(rs.records, multi(t, false, query(t, warehouseID, partnerA)))

	assert.Len(t, res.Groups(), 1)
}

func TestAggregate_SinRepartir_AlcancesDeBodegaSolapados_NoDuplicaAny(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, 5, t0, 3).
		add(entity.PartnerIDAny, 5, t0.Add(time.Hour), 10)

	res := availability.Aggregate(rs.records, multi(t, false,
		query(t, 0, partnerA),
		query(t, 5, entity.PartnerIDAny),
	))

	groups := res.Groups()
	require.Len(t, groups, 2, "la consulta de socio 0 en la bodega 5 ya cubre esa bodega")
	assert.False(t, groups[1].Implicit)
	assertQty(t, 10, res.ByPartner()[entity.PartnerIDAny], "cualquier socio una sola vez")
	assertQty(t, 13, res.QtySum(), "suma")
}

func TestAggregate_SinRepartir_GrupoImplicitoSoloBodegasNoCubiertas(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, 1, t0, 3).
		add(entity.PartnerIDAny, 1, t0.Add(time.Hour), 10).
		add(entity.PartnerIDAny, 2, t0.Add(time.Hour), 4)

	res := availability.Aggregate(rs.records, multi(t, false,
		query(t, 0, partnerA),
		query(t, 1, entity.PartnerIDAny),
	))

	groups := res.Groups()
	require.Len(t, groups, 3)
	assert.True(t, groups[2].Implicit)
	assertQty(t, 4, groups[2].Qty, "solo la bodega 2 queda fuera de la consulta explícita")
	assertQty(t, 14, res.ByPartner()[entity.PartnerIDAny], "bodegas 1 y 2 una vez cada una")
	assertQty(t, 17, res.QtySum(), "suma")
}

func TestAggregate_SinRepartir_ConsultasDeSocioSolapadas_UnSoloImplicitoPorBodega(t *testing.T) {
	rs := (&recordSet{}).
		add(partnerA, 5, t0, 3).
		add(entity.PartnerIDAny, 5, t0.Add(time.Hour), 10)

	res := availability.Aggregate(rs.records, multi(t, false,
		query(t, 0, partnerA),
		query(t, 5, partnerB),
	))

	assertQty(t, 10, res.ByPartner()[entity.PartnerIDAny], "el any de la bodega 5 en un solo grupo implícito")
	assertQty(t, 13, res.QtySum(), "suma")
}
