// Package pdf genera la hoja de conteo de una toma física de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Bodega    │  N° Inventario + Fecha + Bar │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ubicación | HU | SKU | Producto | Libros | Contado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de líneas + firmas                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/atp-api/internal/application/inventory"
)

var _ inventory.CountSheetGenerator = (*CountSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CountSheetGenerator implementa inventory.CountSheetGenerator usando Maroto v2.
type CountSheetGenerator struct{}

// NewCountSheetGenerator construye el generador.
func NewCountSheetGenerator() *CountSheetGenerator { return &CountSheetGenerator{} }

// GenerateCountSheet genera el PDF y devuelve sus bytes.
func (g *CountSheetGenerator) GenerateCountSheet(_ context.Context, sheet inventory.CountSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Hoja de conteo %d", sheet.InventoryID), true).
		WithAuthor(sheet.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(sheet.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRows(sheet)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de conteo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa y bodega (izq), número de inventario con código de barras (der).
func headerRow(sheet inventory.CountSheet) core.Row {
	estado := "ABIERTO"
	if sheet.Processed {
		estado = "PROCESADO"
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(sheet.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+nonEmpty(sheet.WarehouseName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New("Estado: "+estado, props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE CONTEO FÍSICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Inventario N° %d", sheet.InventoryID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+sheet.DocumentDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ubicación", 2, align.Left),
		h("Unidad", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Libros", 1, align.Right),
		h("Contado", 1, align.Right),
		h("UM", 1, align.Center),
	)
}

// tableLineRows: una fila por línea de conteo. La columna "Contado" queda en blanco
// mientras el inventario está abierto, para anotarla a mano.
func tableLineRows(lines []inventory.CountSheetLine) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		counted := "________"
		if !l.QtyCount.Equal(l.QtyBook) {
			counted = l.QtyCount.String()
		}
		out = append(out, row.New(7).Add(
			cell(nonEmpty(l.Locator, "—"), 2, align.Left),
			cell(nonEmpty(l.HUValue, "—"), 2, align.Left),
			cell(l.SKU, 2, align.Left),
			cell(l.ProductName, 3, align.Left),
			cell(l.QtyBook.String(), 1, align.Right),
			cell(counted, 1, align.Right),
			cell(l.UnitMeasure, 1, align.Center),
		))
	}
	return out
}

// footerRows: total de líneas, código de barras del documento y espacio para firmas.
func footerRows(sheet inventory.CountSheet) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Total de líneas: %d", len(sheet.Lines)), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)),
		row.New(14).Add(
			col.New(4).Add(code.NewBar(fmt.Sprintf("INV-%d", sheet.InventoryID), props.Barcode{
				Percent: 80, Center: true,
			})),
			col.New(8),
		),
		row.New(14).Add(
			col.New(6).Add(text.New("Contado por: ______________________", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			})),
			col.New(6).Add(text.New("Revisado por: ______________________", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			})),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
