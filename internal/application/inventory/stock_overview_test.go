package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

type fakeOverview struct {
	records      []entity.StockSnapshotRecord
	gotWarehouse int64
}

func (f *fakeOverview) ListLatestByWarehouse(_ context.Context, _ string, warehouseID int64, _, _ int) ([]entity.StockSnapshotRecord, error) {
	f.gotWarehouse = warehouseID
	return f.records, nil
}

func (f *fakeOverview) RefreshLatestView(context.Context) error { return nil }

func TestStockOverview_ListLatest(t *testing.T) {
	repo := &fakeOverview{records: []entity.StockSnapshotRecord{
		{SeqNo: 4, ProductID: 1, WarehouseID: 10, PartnerID: 7, Qty: decimal.NewFromInt(3)},
	}}
	whs := &fakeWarehouses{byID: map[int64]*entity.Warehouse{
		10: {ID: 10, CompanyID: "org-1"},
		20: {ID: 20, CompanyID: "org-2"},
	}}
	uc := NewStockOverviewUseCase(repo, whs)
	ctx := context.Background()

	out, err := uc.ListLatest(ctx, "org-1", 10, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(7), out.Items[0].PartnerID)
	assert.True(t, out.Items[0].Qty.Equal(decimal.NewFromInt(3)))

	_, err = uc.ListLatest(ctx, "org-1", 0, 20, 0)
	require.NoError(t, err, "bodega 0 lista todas")
	assert.Equal(t, int64(0), repo.gotWarehouse)

	_, err = uc.ListLatest(ctx, "org-1", 20, 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega de otra empresa")

	_, err = uc.ListLatest(ctx, "org-1", -1, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
