package availability_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

func TestAttributesKeyOf_OrdenaCanonicamente(t *testing.T) {
	k, err := availability.AttributesKeyOf(42, 3, 17)
	require.NoError(t, err)
	assert.Equal(t, availability.AttributesKey("3-17-42"), k)
	assert.Equal(t, []int64{3, 17, 42}, k.ValueIDs())
}

func TestAttributesKeyOf_Rechaza(t *testing.T) {
	_, err := availability.AttributesKeyOf(3, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ids repetidos")

	_, err = availability.AttributesKeyOf(0, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "id no positivo")
}

func TestParseAttributesKey(t *testing.T) {
	k, err := availability.ParseAttributesKey(" 9-2 ")
	require.NoError(t, err)
	assert.Equal(t, availability.AttributesKey("2-9"), k)

	k, err = availability.ParseAttributesKey("")
	require.NoError(t, err)
	assert.Equal(t, availability.AttributesKeyNone, k)

	_, err = availability.ParseAttributesKey("2-x")
	var verr *availability.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "attributes_key", verr.Field)
}

func TestAttributesKey_Validate_NoCanonica(t *testing.T) {
	assert.Error(t, availability.AttributesKey("9-2").Validate())
	assert.NoError(t, availability.AttributesKey("2-9").Validate())
	assert.NoError(t, availability.AttributesKeyNone.Validate())
}

func TestQueryBuilder_Validaciones(t *testing.T) {
	_, err := availability.NewQuery().ProductID(0).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto no positivo")

	_, err = availability.NewQuery().ProductID(1).WarehouseID(-1).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bodega negativa")

	_, err = availability.NewQuery().ProductID(1).PartnerID(-5).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "socio negativo")

	_, err = availability.NewQuery().ProductID(1).AttributesKey("5-1").Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "clave no canónica")

	_, err = availability.NewQuery().ProductID(1).AttributesKeyString("a-b").Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "clave mal formada")

	q, err := availability.NewQuery().ProductID(1).AttributesKeyString("5-1").WarehouseID(2).PartnerID(3).Build()
	require.NoError(t, err)
	assert.Equal(t, availability.AttributesKey("1-5"), q.AttributesKey())
	assert.Equal(t, int64(2), q.WarehouseID())
	assert.False(t, q.IsAnyPartner())
}

func TestMultiQueryBuilder(t *testing.T) {
	_, err := availability.NewMultiQuery().Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "vacía")

	q, err := availability.NewQuery().ProductID(1).PartnerID(3).Build()
	require.NoError(t, err)

	_, err = availability.NewMultiQuery().Query(q).Query(q).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "repetida")

	mq, err := availability.MultiQueryOf(q)
	require.NoError(t, err)
	assert.True(t, mq.AddToPredefinedBuckets(), "por defecto reparte en los buckets")
	assert.Len(t, mq.Queries(), 1)
}

func TestForDescriptorAndAllPossiblePartners(t *testing.T) {
	q, err := availability.NewQuery().ProductID(1).PartnerID(3).Build()
	require.NoError(t, err)

	mq, err := availability.ForDescriptorAndAllPossiblePartners(q)
	require.NoError(t, err)
	qs := mq.Queries()
	require.Len(t, qs, 2)
	assert.Equal(t, int64(3), qs[0].PartnerID())
	assert.Equal(t, entity.PartnerIDAny, qs[1].PartnerID())

	mq, err = availability.ForDescriptorAndAllPossiblePartners(q.WithPartner(entity.PartnerIDAny))
	require.NoError(t, err)
	assert.Len(t, mq.Queries(), 1, "la consulta de socio 0 no se duplica")
}
