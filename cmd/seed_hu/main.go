// seed_hu genera un script SQL para cargar unidades de manipulación (pallets, cajas) y su
// contenido a partir de un export XML de otro sistema de bodega.
//
// Uso: go run ./cmd/seed_hu [ruta/handling_units.xml] [salida.sql]
// Por defecto lee handling_units.xml y escribe seed_handling_units.sql en el directorio actual.
//
// Formato esperado (ISO-8859-1 o UTF-8):
//
//	<handlingUnits company="<uuid>" warehouse="Bodega Central">
//	  <hu value="PAL-001" locator="A-01" status="active">
//	    <storage sku="SKU-1" qty="12" unit="UND"/>
//	    <hu value="CAJ-001" locator="A-01">...</hu>
//	  </hu>
//	</handlingUnits>
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

type huExport struct {
	CompanyID string
	Warehouse string
	Units     []huRow // padres antes que hijos
}

type huRow struct {
	Value   string
	Locator string
	Parent  string
	Status  string
	Storage []storageRow
}

type storageRow struct {
	SKU         string
	Qty         decimal.Decimal
	UnitMeasure string
}

func main() {
	xmlPath := "handling_units.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := "seed_handling_units.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	exp, err := parseExport(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer export: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, exp); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d unidades de manipulación\n", outPath, len(exp.Units))
}

func parseExport(r io.Reader) (*huExport, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	root := doc.SelectElement("handlingUnits")
	if root == nil {
		return nil, fmt.Errorf("falta el elemento raíz handlingUnits")
	}

	exp := &huExport{
		CompanyID: strings.TrimSpace(root.SelectAttrValue("company", "")),
		Warehouse: strings.TrimSpace(root.SelectAttrValue("warehouse", "")),
	}
	if _, err := uuid.Parse(exp.CompanyID); err != nil {
		return nil, fmt.Errorf("company inválido %q", exp.CompanyID)
	}
	if exp.Warehouse == "" {
		return nil, fmt.Errorf("warehouse es requerido")
	}

	seen := make(map[string]struct{})
	var walk func(el *etree.Element, parent string) error
	walk = func(el *etree.Element, parent string) error {
		for _, h := range el.SelectElements("hu") {
			row := huRow{
				Value:   strings.TrimSpace(h.SelectAttrValue("value", "")),
				Locator: strings.TrimSpace(h.SelectAttrValue("locator", "")),
				Parent:  parent,
				Status:  strings.TrimSpace(h.SelectAttrValue("status", entity.HUStatusActive)),
			}
			if row.Value == "" || row.Locator == "" {
				return fmt.Errorf("hu requiere value y locator (padre %q)", parent)
			}
			if !entity.ValidHUStatus(row.Status) {
				return fmt.Errorf("hu %s: estado desconocido %q", row.Value, row.Status)
			}
			if _, dup := seen[row.Value]; dup {
				return fmt.Errorf("hu %s repetida", row.Value)
			}
			seen[row.Value] = struct{}{}

			for _, s := range h.SelectElements("storage") {
				qty, err := decimal.NewFromString(strings.TrimSpace(s.SelectAttrValue("qty", "")))
				if err != nil || qty.IsNegative() {
					return fmt.Errorf("hu %s: cantidad inválida %q", row.Value, s.SelectAttrValue("qty", ""))
				}
				sku := strings.TrimSpace(s.SelectAttrValue("sku", ""))
				if sku == "" {
					return fmt.Errorf("hu %s: storage sin sku", row.Value)
				}
				row.Storage = append(row.Storage, storageRow{
					SKU:         sku,
					Qty:         qty,
					UnitMeasure: strings.TrimSpace(s.SelectAttrValue("unit", "UND")),
				})
			}
			exp.Units = append(exp.Units, row)
			if err := walk(h, row.Value); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, ""); err != nil {
		return nil, err
	}
	return exp, nil
}

func writeSQL(w io.Writer, exp *huExport) error {
	var b strings.Builder
	b.WriteString("-- Unidades de manipulación y su contenido\n")
	fmt.Fprintf(&b, "-- Empresa %s, bodega %s\n\n", exp.CompanyID, exp.Warehouse)
	b.WriteString("BEGIN;\n\n")

	for _, u := range exp.Units {
		parent := "NULL"
		if u.Parent != "" {
			parent = fmt.Sprintf("(SELECT id FROM handling_units WHERE value = '%s')", escapeSQL(u.Parent))
		}
		b.WriteString("INSERT INTO handling_units (value, warehouse_id, locator_id, parent_id, status)\n")
		fmt.Fprintf(&b, "SELECT '%s', w.id, l.id, %s, '%s'\n", escapeSQL(u.Value), parent, u.Status)
		fmt.Fprintf(&b, "  FROM warehouses w JOIN locators l ON l.warehouse_id = w.id AND l.value = '%s'\n", escapeSQL(u.Locator))
		fmt.Fprintf(&b, " WHERE w.company_id = '%s' AND w.name = '%s'\n", exp.CompanyID, escapeSQL(exp.Warehouse))
		b.WriteString("ON CONFLICT (value) DO UPDATE SET locator_id = EXCLUDED.locator_id, parent_id = EXCLUDED.parent_id,\n")
		b.WriteString("    status = EXCLUDED.status, updated_at = now();\n")

		for _, s := range u.Storage {
			b.WriteString("INSERT INTO hu_product_storage (hu_id, product_id, qty, unit_measure)\n")
			fmt.Fprintf(&b, "SELECT h.id, p.id, %s, '%s'\n", s.Qty.String(), escapeSQL(s.UnitMeasure))
			fmt.Fprintf(&b, "  FROM handling_units h JOIN products p ON p.company_id = '%s' AND p.sku = '%s'\n", exp.CompanyID, escapeSQL(s.SKU))
			fmt.Fprintf(&b, " WHERE h.value = '%s'\n", escapeSQL(u.Value))
			b.WriteString("ON CONFLICT (hu_id, product_id) DO UPDATE SET qty = EXCLUDED.qty, unit_measure = EXCLUDED.unit_measure;\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
