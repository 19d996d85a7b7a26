//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
	"github.com/jhoicas/atp-api/pkg/config"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("atp"),
		postgres.WithUsername("atp"),
		postgres.WithPassword("atp"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, ConnectRetries: 10})
	require.NoError(t, err, "la base no respondió")
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()))
	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()), "una segunda corrida no tiene pendientes")
	return pool
}

type seeded struct {
	companyID   string
	warehouseID int64
	locatorID   int64
	productID   int64
}

func seed(t *testing.T, pool *pgxpool.Pool) seeded {
	t.Helper()
	now := time.Now()
	company := &entity.Company{ID: uuid.New().String(), Name: "Acme", NIT: "900123456", Status: "active", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewCompanyRepository(pool).Create(company))

	wh := &entity.Warehouse{CompanyID: company.ID, Name: "Principal", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewWarehouseRepository(pool).Create(wh))
	loc := &entity.Locator{WarehouseID: wh.ID, Value: "A-01", CreatedAt: now}
	require.NoError(t, NewLocatorRepository(pool).Create(loc))

	p := &entity.Product{CompanyID: company.ID, SKU: "SKU-1", Name: "Tornillo", UnitMeasure: "UND", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewProductRepository(pool).Create(p))
	return seeded{companyID: company.ID, warehouseID: wh.ID, locatorID: loc.ID, productID: p.ID}
}

func appendRecord(t *testing.T, tx *TxRunner, rec entity.StockSnapshotRecord) entity.StockSnapshotRecord {
	t.Helper()
	err := tx.Run(context.Background(), func(snapshots repository.StockSnapshotRepository, _ repository.ProductRepository) error {
		if _, err := snapshots.LatestForUpdate(context.Background(), rec.Key()); err != nil {
			return err
		}
		return snapshots.Append(context.Background(), &rec)
	})
	require.NoError(t, err)
	return rec
}

func TestSnapshotStore_Integration(t *testing.T) {
	pool := startPostgres(t)
	s := seed(t, pool)
	ctx := context.Background()
	tx := NewTxRunner(pool)
	reader := NewStockSnapshotReader(pool)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	const partner = int64(42)

	anyRec := appendRecord(t, tx, entity.StockSnapshotRecord{
		ProductID: s.productID, WarehouseID: s.warehouseID, PartnerID: entity.PartnerIDAny,
		DateProjected: date, Qty: decimal.NewFromInt(10),
	})
	partnerRec := appendRecord(t, tx, entity.StockSnapshotRecord{
		ProductID: s.productID, WarehouseID: s.warehouseID, PartnerID: partner,
		DateProjected: date, Qty: decimal.NewFromInt(10),
	})
	assert.Greater(t, partnerRec.SeqNo, anyRec.SeqNo, "la secuencia es creciente")

	q, err := availability.NewQuery().ProductID(s.productID).WarehouseID(s.warehouseID).PartnerID(partner).Build()
	require.NoError(t, err)

	t.Run("LatestRecords y agregación", func(t *testing.T) {
		recs, err := reader.LatestRecords(ctx, []availability.Query{q})
		require.NoError(t, err)
		require.Len(t, recs, 2)

		mq, err := availability.MultiQueryOf(q)
		require.NoError(t, err)
		res := availability.Aggregate(recs, mq)
		assert.True(t, decimal.NewFromInt(10).Equal(res.ByPartner()[partner]), "misma fecha: el any insertado antes ya está incluido")
	})

	t.Run("el último registro reemplaza al anterior", func(t *testing.T) {
		appendRecord(t, tx, entity.StockSnapshotRecord{
			ProductID: s.productID, WarehouseID: s.warehouseID, PartnerID: entity.PartnerIDAny,
			DateProjected: date.Add(time.Hour), Qty: decimal.NewFromInt(4),
		})
		recs, err := reader.LatestRecords(ctx, []availability.Query{q})
		require.NoError(t, err)
		mq, err := availability.MultiQueryOf(q)
		require.NoError(t, err)
		res := availability.Aggregate(recs, mq)
		assert.True(t, decimal.NewFromInt(14).Equal(res.ByPartner()[partner]))
	})

	t.Run("sin registros devuelve vacío", func(t *testing.T) {
		other, err := availability.NewQuery().ProductID(s.productID + 1000).Build()
		require.NoError(t, err)
		recs, err := reader.LatestRecords(ctx, []availability.Query{other})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("vista materializada", func(t *testing.T) {
		require.NoError(t, reader.RefreshLatestView(ctx))
		list, err := reader.ListLatestByWarehouse(ctx, s.companyID, 0, 50, 0)
		require.NoError(t, err)
		assert.Len(t, list, 2, "una fila por serie")
	})
}

func TestHandlingUnits_Integration(t *testing.T) {
	pool := startPostgres(t)
	s := seed(t, pool)
	ctx := context.Background()
	repo := NewHandlingUnitRepository(pool)
	now := time.Now()

	pallet := &entity.HandlingUnit{Value: "P-1", WarehouseID: s.warehouseID, LocatorID: s.locatorID, Status: entity.HUStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, pallet))
	box := &entity.HandlingUnit{Value: "B-1", WarehouseID: s.warehouseID, LocatorID: s.locatorID, ParentID: pallet.ID, Status: entity.HUStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, box))
	require.NoError(t, repo.SetProductStorage(ctx, &entity.HUProductStorage{HUID: pallet.ID, ProductID: s.productID, Qty: decimal.NewFromInt(2), UnitMeasure: "UND"}))
	require.NoError(t, repo.SetProductStorage(ctx, &entity.HUProductStorage{HUID: box.ID, ProductID: s.productID, Qty: decimal.NewFromInt(3), UnitMeasure: "UND"}))

	units, err := repo.ListWithStorage(ctx, repository.HUFilter{
		WarehouseID: s.warehouseID, Statuses: entity.QtyOnHandHUStatuses(), TopLevelOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, pallet.ID, units[0].HU.ID)
	require.Len(t, units[0].Storages, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(units[0].Storages[0].Qty), "incluye la caja hija")

	got, err := repo.GetByID(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, pallet.ID, got.ParentID)

	assert.ErrorIs(t, repo.Create(ctx, &entity.HandlingUnit{Value: "P-1", WarehouseID: s.warehouseID, LocatorID: s.locatorID, Status: entity.HUStatusActive}), domain.ErrDuplicate)
}

func TestCampaigns_Integration(t *testing.T) {
	pool := startPostgres(t)
	s := seed(t, pool)
	ctx := context.Background()
	repo := NewCampaignRepository(pool)
	now := time.Now()

	first := &entity.Campaign{ID: uuid.New().String(), CompanyID: s.companyID, Name: "Newsletter", IsDefaultNewsletter: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, first))
	second := &entity.Campaign{ID: uuid.New().String(), CompanyID: s.companyID, Name: "Otra", IsDefaultNewsletter: true, CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, repo.Create(ctx, second), domain.ErrDuplicate)

	got, err := repo.GetDefaultNewsletter(ctx, s.companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	user := &entity.User{ID: uuid.New().String(), CompanyID: s.companyID, Email: "ana@acme.co", PasswordHash: "x", Name: "Ana", Role: entity.RoleVendedor, Status: "active", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewUserRepository(pool).Create(user))
	contact := &entity.CampaignContact{CampaignID: first.ID, UserID: user.ID, Email: user.Email, CreatedAt: now}
	require.NoError(t, repo.AddContact(ctx, contact))
	require.NoError(t, repo.AddContact(ctx, contact), "inscribir dos veces no falla")

	contacts, err := repo.ListContacts(ctx, first.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)

	require.NoError(t, repo.RemoveContact(ctx, first.ID, user.ID))
	contacts, err = repo.ListContacts(ctx, first.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
