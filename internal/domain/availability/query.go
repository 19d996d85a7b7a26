package availability

import (
	"fmt"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// Query criterio de selección de stock: producto, atributos, bodega (0 = todas) y
// socio (0 = cualquier socio). Inmutable; se construye con NewQuery.
type Query struct {
	productID     int64
	attributesKey AttributesKey
	warehouseID   int64
	partnerID     int64
}

func (q Query) ProductID() int64             { return q.productID }
func (q Query) AttributesKey() AttributesKey { return q.attributesKey }
func (q Query) WarehouseID() int64           { return q.warehouseID }
func (q Query) PartnerID() int64             { return q.partnerID }

// IsAnyPartner informa si la consulta es para el bucket "cualquier socio".
func (q Query) IsAnyPartner() bool {
	return q.partnerID == entity.PartnerIDAny
}

// WithPartner devuelve una copia de la consulta para otro socio.
func (q Query) WithPartner(partnerID int64) Query {
	q.partnerID = partnerID
	return q
}

// Validate rechaza producto no positivo, ids negativos y claves de atributos mal formadas.
func (q Query) Validate() error {
	if q.productID <= 0 {
		return &ValidationError{Field: "product_id", Reason: fmt.Sprintf("debe ser positivo, recibido %d", q.productID)}
	}
	if q.warehouseID < 0 {
		return &ValidationError{Field: "warehouse_id", Reason: fmt.Sprintf("no puede ser negativo, recibido %d", q.warehouseID)}
	}
	if q.partnerID < 0 {
		return &ValidationError{Field: "partner_id", Reason: fmt.Sprintf("no puede ser negativo, recibido %d", q.partnerID)}
	}
	return q.attributesKey.Validate()
}

func (q Query) scope() scope {
	return scope{productID: q.productID, attributesKey: q.attributesKey, warehouseID: q.warehouseID}
}

// scope producto + atributos + bodega de una consulta (bodega 0 = todas).
type scope struct {
	productID     int64
	attributesKey AttributesKey
	warehouseID   int64
}

// QueryBuilder construye una Query validada.
type QueryBuilder struct {
	q   Query
	err error
}

// NewQuery inicia la construcción de una consulta.
func NewQuery() *QueryBuilder {
	return &QueryBuilder{}
}

func (b *QueryBuilder) ProductID(id int64) *QueryBuilder {
	b.q.productID = id
	return b
}

func (b *QueryBuilder) AttributesKey(k AttributesKey) *QueryBuilder {
	b.q.attributesKey = k
	return b
}

// AttributesKeyString interpreta la clave en texto; el error se devuelve en Build.
func (b *QueryBuilder) AttributesKeyString(s string) *QueryBuilder {
	k, err := ParseAttributesKey(s)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.q.attributesKey = k
	return b
}

func (b *QueryBuilder) WarehouseID(id int64) *QueryBuilder {
	b.q.warehouseID = id
	return b
}

func (b *QueryBuilder) PartnerID(id int64) *QueryBuilder {
	b.q.partnerID = id
	return b
}

// Build valida y devuelve la consulta.
func (b *QueryBuilder) Build() (Query, error) {
	if b.err != nil {
		return Query{}, b.err
	}
	if err := b.q.Validate(); err != nil {
		return Query{}, err
	}
	return b.q, nil
}

// MultiQuery conjunto ordenado de consultas. addToPredefinedBuckets indica si la
// cantidad del bucket "cualquier socio" se reparte en los buckets de cada socio (true)
// o se reporta como grupo propio (false).
type MultiQuery struct {
	queries                []Query
	addToPredefinedBuckets bool
}

// Queries devuelve una copia de las consultas en orden.
func (m MultiQuery) Queries() []Query {
	return append([]Query(nil), m.queries...)
}

func (m MultiQuery) AddToPredefinedBuckets() bool {
	return m.addToPredefinedBuckets
}

// Validate rechaza multiconsultas vacías, consultas inválidas y consultas repetidas.
func (m MultiQuery) Validate() error {
	if len(m.queries) == 0 {
		return &ValidationError{Field: "queries", Reason: "se requiere al menos una consulta"}
	}
	seen := make(map[Query]struct{}, len(m.queries))
	for i, q := range m.queries {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q]; dup {
			return &ValidationError{Field: "queries", Reason: fmt.Sprintf("consulta %d repetida", i)}
		}
		seen[q] = struct{}{}
	}
	return nil
}

// MultiQueryBuilder construye una MultiQuery. Por defecto addToPredefinedBuckets = true.
type MultiQueryBuilder struct {
	m MultiQuery
}

// NewMultiQuery inicia la construcción de una multiconsulta.
func NewMultiQuery() *MultiQueryBuilder {
	return &MultiQueryBuilder{m: MultiQuery{addToPredefinedBuckets: true}}
}

func (b *MultiQueryBuilder) Query(q Query) *MultiQueryBuilder {
	b.m.queries = append(b.m.queries, q)
	return b
}

func (b *MultiQueryBuilder) AddToPredefinedBuckets(v bool) *MultiQueryBuilder {
	b.m.addToPredefinedBuckets = v
	return b
}

// Build valida y devuelve la multiconsulta.
func (b *MultiQueryBuilder) Build() (MultiQuery, error) {
	m := MultiQuery{
		queries:                append([]Query(nil), b.m.queries...),
		addToPredefinedBuckets: b.m.addToPredefinedBuckets,
	}
	if err := m.Validate(); err != nil {
		return MultiQuery{}, err
	}
	return m, nil
}

// MultiQueryOf multiconsulta de una sola consulta.
func MultiQueryOf(q Query) (MultiQuery, error) {
	return NewMultiQuery().Query(q).Build()
}

// ForDescriptorAndAllPossiblePartners devuelve la consulta dada y, si es para un socio
// específico, también la del bucket "cualquier socio" del mismo producto/atributos/bodega.
func ForDescriptorAndAllPossiblePartners(q Query) (MultiQuery, error) {
	b := NewMultiQuery().Query(q)
	if !q.IsAnyPartner() {
		b.Query(q.WithPartner(entity.PartnerIDAny))
	}
	return b.Build()
}
