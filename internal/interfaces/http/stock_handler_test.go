package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/application/availability"
	"github.com/jhoicas/atp-api/internal/application/dto"
	atp "github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
	apphttp "github.com/jhoicas/atp-api/internal/interfaces/http"
)

type fakeReader struct {
	records []entity.StockSnapshotRecord
	calls   int
}

func (f *fakeReader) LatestRecords(_ context.Context, _ []atp.Query) ([]entity.StockSnapshotRecord, error) {
	f.calls++
	return f.records, nil
}

type stubProducts struct {
	repository.ProductRepository
}

func (stubProducts) GetByID(id int64) (*entity.Product, error) {
	return &entity.Product{ID: id, CompanyID: testCompanyID, SKU: "SKU-1", Name: "Tornillo"}, nil
}

func buildStockApp(reader *fakeReader) *fiber.App {
	uc := availability.NewUseCase(reader, stubProducts{}, zerolog.Nop())
	h := apphttp.NewStockHandler(nil, uc, nil)
	app := fiber.New()
	app.Post("/api/stock/availability", apphttp.AuthMiddleware(testJWTSecret), h.Availability)
	return app
}

func postAvailability(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/stock/availability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAvailability_AnyPosteriorSeSumaAlSocio(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	reader := &fakeReader{records: []entity.StockSnapshotRecord{
		{SeqNo: 1, ProductID: 10, WarehouseID: 1, PartnerID: 100, DateProjected: t0, Qty: decimal.NewFromInt(10)},
		{SeqNo: 2, ProductID: 10, WarehouseID: 1, PartnerID: 0, DateProjected: t0.Add(time.Hour), Qty: decimal.NewFromInt(10)},
	}}
	app := buildStockApp(reader)

	resp := postAvailability(t, app, `{"queries":[{"product_id":10,"warehouse_id":1,"partner_id":100}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AvailabilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Groups, 1)
	assert.Equal(t, int64(100), out.Groups[0].PartnerID)
	assert.True(t, out.Groups[0].Qty.Equal(decimal.NewFromInt(20)), "obtenido %s", out.Groups[0].Qty)
	assert.True(t, out.QtySum.Equal(decimal.NewFromInt(20)), "obtenido %s", out.QtySum)
	assert.Equal(t, 1, reader.calls, "una sola lectura de snapshots")
}

func TestAvailability_IncluirCualquierSocio(t *testing.T) {
	app := buildStockApp(&fakeReader{})

	resp := postAvailability(t, app, `{"include_any_partner":true,"queries":[{"product_id":10,"partner_id":100}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AvailabilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Groups, 2)
	assert.Equal(t, int64(100), out.Groups[0].PartnerID)
	assert.Equal(t, int64(0), out.Groups[1].PartnerID)
	assert.True(t, out.QtySum.IsZero(), "sin registros la cantidad es cero")
}

func TestAvailability_ValidacionRetorna400(t *testing.T) {
	cases := map[string]string{
		"sin consultas":       `{"queries":[]}`,
		"producto cero":       `{"queries":[{"product_id":0}]}`,
		"bodega negativa":     `{"queries":[{"product_id":1,"warehouse_id":-1}]}`,
		"atributos inválidos": `{"queries":[{"product_id":1,"attributes_key":"3-x"}]}`,
		"consulta repetida":   `{"queries":[{"product_id":1},{"product_id":1}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			reader := &fakeReader{}
			app := buildStockApp(reader)

			resp := postAvailability(t, app, body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var out dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, "VALIDATION", out.Code)
			assert.Zero(t, reader.calls, "la validación ocurre antes de leer el almacén")
		})
	}
}

func TestAvailability_SinRepartir_GrupoImplicito(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	reader := &fakeReader{records: []entity.StockSnapshotRecord{
		{SeqNo: 1, ProductID: 10, WarehouseID: 1, PartnerID: 100, DateProjected: t0, Qty: decimal.NewFromInt(4)},
		{SeqNo: 2, ProductID: 10, WarehouseID: 1, PartnerID: 0, DateProjected: t0.Add(time.Hour), Qty: decimal.NewFromInt(6)},
	}}
	app := buildStockApp(reader)

	resp := postAvailability(t, app, `{"add_to_predefined_buckets":false,"queries":[{"product_id":10,"warehouse_id":1,"partner_id":100}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AvailabilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Groups, 2)
	assert.True(t, out.Groups[0].Qty.Equal(decimal.NewFromInt(4)))
	assert.False(t, out.Groups[0].Implicit)
	assert.Equal(t, int64(0), out.Groups[1].PartnerID)
	assert.True(t, out.Groups[1].Implicit)
	assert.True(t, out.Groups[1].Qty.Equal(decimal.NewFromInt(6)))
	assert.True(t, out.QtySum.Equal(decimal.NewFromInt(10)))
}
