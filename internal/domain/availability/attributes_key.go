// Package availability calcula el stock disponible para prometer (ATP) por bucket de socio
// a partir de los snapshots de stock, sin contar dos veces la cantidad que el bucket
// "cualquier socio" comparte con los buckets de socios específicos.
package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/atp-api/internal/domain"
)

const attributesKeySeparator = "-"

// AttributesKey clave canónica de atributos de almacenamiento: ids de valores de atributo
// positivos, en orden ascendente y sin repetir, unidos por "-" (ej. "3-17-42").
// La clave vacía significa "sin atributos".
type AttributesKey string

// AttributesKeyNone clave sin atributos.
const AttributesKeyNone AttributesKey = ""

// AttributesKeyOf construye la clave canónica a partir de ids de valores de atributo.
func AttributesKeyOf(valueIDs ...int64) (AttributesKey, error) {
	if len(valueIDs) == 0 {
		return AttributesKeyNone, nil
	}
	ids := append([]int64(nil), valueIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for i, id := range ids {
		if id <= 0 {
			return "", &ValidationError{Field: "attributes_key", Reason: fmt.Sprintf("id de atributo no positivo: %d", id)}
		}
		if i > 0 && ids[i-1] == id {
			return "", &ValidationError{Field: "attributes_key", Reason: fmt.Sprintf("id de atributo repetido: %d", id)}
		}
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return AttributesKey(strings.Join(parts, attributesKeySeparator)), nil
}

// ParseAttributesKey interpreta una clave en texto. Acepta ids en cualquier orden y
// devuelve la forma canónica.
func ParseAttributesKey(s string) (AttributesKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AttributesKeyNone, nil
	}
	tokens := strings.Split(s, attributesKeySeparator)
	ids := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return "", &ValidationError{Field: "attributes_key", Reason: fmt.Sprintf("segmento inválido %q", tok)}
		}
		ids = append(ids, id)
	}
	return AttributesKeyOf(ids...)
}

// Validate verifica que la clave esté en forma canónica.
func (k AttributesKey) Validate() error {
	canonical, err := ParseAttributesKey(string(k))
	if err != nil {
		return err
	}
	if canonical != k {
		return &ValidationError{Field: "attributes_key", Reason: fmt.Sprintf("clave no canónica %q (esperada %q)", string(k), string(canonical))}
	}
	return nil
}

// ValueIDs devuelve los ids de valores de atributo de la clave.
func (k AttributesKey) ValueIDs() []int64 {
	if k == AttributesKeyNone {
		return nil
	}
	var ids []int64
	for _, tok := range strings.Split(string(k), attributesKeySeparator) {
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func (k AttributesKey) String() string {
	return string(k)
}

// ValidationError consulta rechazada antes de acceder al almacén de stock.
// errors.Is(err, domain.ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("availability: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}
