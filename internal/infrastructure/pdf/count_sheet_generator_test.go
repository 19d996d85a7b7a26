package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/application/inventory"
)

func TestGenerateCountSheet(t *testing.T) {
	sheet := inventory.CountSheet{
		InventoryID:   7,
		CompanyName:   "Acme",
		WarehouseName: "Principal",
		DocumentDate:  time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Lines: []inventory.CountSheetLine{
			{SKU: "SKU-1", ProductName: "Tornillo", Locator: "A-01", HUValue: "HU-001",
				QtyBook: decimal.NewFromInt(5), QtyCount: decimal.NewFromInt(5), UnitMeasure: "UND"},
			{SKU: "SKU-2", ProductName: "Tuerca", Locator: "A-02",
				QtyBook: decimal.NewFromInt(3), QtyCount: decimal.NewFromInt(1), UnitMeasure: "UND"},
		},
	}

	out, err := NewCountSheetGenerator().GenerateCountSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el resultado es un PDF")
}

func TestGenerateCountSheet_SinLineas(t *testing.T) {
	out, err := NewCountSheetGenerator().GenerateCountSheet(context.Background(), inventory.CountSheet{
		InventoryID: 1, CompanyName: "Acme", DocumentDate: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
