package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atp-api/internal/application/availability"
	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/application/inventory"
	atp "github.com/jhoicas/atp-api/internal/domain/availability"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// StockHandler cambios de stock, disponibilidad (ATP) y existencias actuales (protegido).
type StockHandler struct {
	changes      *inventory.StockChangeUseCase
	availability *availability.UseCase
	overview     *inventory.StockOverviewUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(changes *inventory.StockChangeUseCase, atpUC *availability.UseCase, overview *inventory.StockOverviewUseCase) *StockHandler {
	return &StockHandler{changes: changes, availability: atpUC, overview: overview}
}

// RecordChange godoc
// @Summary      Registrar cambio de stock
// @Description  IN (requiere unit_cost), OUT, ADJUSTMENT (quantity con signo) o TRANSFER
//
//	(from_warehouse_id / to_warehouse_id). partner_id 0 = stock de cualquier socio.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockChangeRequest  true  "Cambio de stock"
// @Success      201   {array}   dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/changes [post]
func (h *StockHandler) RecordChange(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := inventory.StockChangeInput{
		CompanyID:       companyID,
		UserID:          userID,
		Type:            in.Type,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		AttributesKey:   in.AttributesKey,
		PartnerID:       in.PartnerID,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
	}
	if in.DateProjected != nil {
		input.DateProjected = *in.DateProjected
	}
	records, err := h.changes.RecordStockChange(c.UserContext(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, inventory.ToStockRecordResponse(r))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Availability godoc
// @Summary      Stock disponible para prometer
// @Description  Cantidad por bucket de socio para cada consulta, sin contar dos veces el stock
//
//	de "cualquier socio". Con add_to_predefined_buckets=false ese stock sale como grupo propio.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "Consultas"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/availability [post]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mq, err := buildMultiQuery(in)
	if err != nil {
		return errorResponse(c, err)
	}
	res, err := h.availability.ComputeAvailableStock(c.UserContext(), companyID, mq)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toAvailabilityResponse(res))
}

// Latest godoc
// @Summary      Existencias actuales
// @Description  Último registro de cada serie según la vista que refresca el scheduler.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  int  false  "Bodega (0 = todas)"
// @Param        limit         query  int  false  "Límite"   default(20)
// @Param        offset        query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.StockRecordListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/latest [get]
func (h *StockHandler) Latest(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := page(c)
	out, err := h.overview.ListLatest(c.UserContext(), companyID, int64(c.QueryInt("warehouse_id", 0)), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// buildMultiQuery arma la multiconsulta validada. Con IncludeAnyPartner cada consulta de
// socio arrastra al final la de "cualquier socio" del mismo producto, atributos y bodega,
// salvo que ya venga pedida. Las consultas repetidas del cliente se rechazan en Build.
func buildMultiQuery(in dto.AvailabilityRequest) (atp.MultiQuery, error) {
	b := atp.NewMultiQuery()
	if in.AddToPredefinedBuckets != nil {
		b.AddToPredefinedBuckets(*in.AddToPredefinedBuckets)
	}
	queries := make([]atp.Query, 0, len(in.Queries))
	requested := make(map[atp.Query]struct{}, len(in.Queries))
	for _, rq := range in.Queries {
		q, err := atp.NewQuery().
			ProductID(rq.ProductID).
			AttributesKeyString(rq.AttributesKey).
			WarehouseID(rq.WarehouseID).
			PartnerID(rq.PartnerID).
			Build()
		if err != nil {
			return atp.MultiQuery{}, err
		}
		queries = append(queries, q)
		requested[q] = struct{}{}
		b.Query(q)
	}
	if in.IncludeAnyPartner {
		for _, q := range queries {
			if q.IsAnyPartner() {
				continue
			}
			anyQ := q.WithPartner(entity.PartnerIDAny)
			if _, ok := requested[anyQ]; ok {
				continue
			}
			requested[anyQ] = struct{}{}
			b.Query(anyQ)
		}
	}
	return b.Build()
}

func toAvailabilityResponse(res atp.Result) dto.AvailabilityResponse {
	groups := res.Groups()
	out := dto.AvailabilityResponse{
		Groups:    make([]dto.AvailabilityGroupResponse, 0, len(groups)),
		ByPartner: res.ByPartner(),
		QtySum:    res.QtySum(),
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, dto.AvailabilityGroupResponse{
			ProductID:     g.ProductID,
			AttributesKey: g.AttributesKey.String(),
			WarehouseID:   g.WarehouseID,
			PartnerID:     g.PartnerID,
			Qty:           g.Qty,
			Implicit:      g.Implicit,
		})
	}
	return out
}
