package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/application/inventory"
	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// InventoryHandler toma física de inventario (protegido, módulo inventory).
type InventoryHandler struct {
	uc *inventory.CountUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.CountUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento de inventario
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "warehouse_id, document_date"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var docDate time.Time
	if in.DocumentDate != nil {
		docDate = *in.DocumentDate
	}
	inv, err := h.uc.CreateInventory(c.UserContext(), companyID, userID, in.WarehouseID, docDate)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInventoryResponse(inv, nil))
}

// GetByID godoc
// @Summary      Obtener documento de inventario con sus líneas
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	inv, lines, err := h.uc.GetInventory(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toInventoryResponse(inv, lines))
}

// CountLinesFromHU godoc
// @Summary      Generar líneas de conteo desde unidades de manipulación
// @Description  Crea o actualiza una línea por (unidad, producto) con la cantidad almacenada
//
//	en las unidades de nivel superior activas o seleccionadas de la bodega.
//
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true   "ID del inventario"
// @Param        body  body  dto.CountLinesFromHURequest  false  "locator_id, product_id"
// @Success      200   {object}  dto.CountLinesFromHUResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/count-lines-from-hu [post]
func (h *InventoryHandler) CountLinesFromHU(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.CountLinesFromHURequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	n, err := h.uc.CreateCountLinesFromHU(c.UserContext(), GetCompanyID(c), id, inventory.CountLinesFilter{
		LocatorID: in.LocatorID,
		ProductID: in.ProductID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.CountLinesFromHUResponse{Lines: n})
}

// UpdateLine godoc
// @Summary      Registrar cantidad contada de una línea
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  int                          true  "ID del inventario"
// @Param        lineId  path  int                          true  "ID de la línea"
// @Param        body    body  dto.UpdateCountedQtyRequest  true  "qty_count"
// @Success      200     {object}  dto.InventoryLineResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/lines/{lineId} [patch]
func (h *InventoryHandler) UpdateLine(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	lineID, ok := paramID(c, "lineId")
	if !ok {
		return invalidID(c, "lineId")
	}
	var in dto.UpdateCountedQtyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	line, err := h.uc.UpdateCountedQty(c.UserContext(), GetCompanyID(c), id, lineID, in.QtyCount)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toInventoryLineResponse(line))
}

// Process godoc
// @Summary      Procesar inventario
// @Description  Publica un ajuste en el libro de stock por cada línea con diferencia y cierra el documento.
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del inventario"
// @Success      200  {object}  dto.ProcessInventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/process [post]
func (h *InventoryHandler) Process(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	n, err := h.uc.ProcessInventory(c.UserContext(), GetCompanyID(c), GetUserID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ProcessInventoryResponse{Adjustments: n})
}

// CountSheet godoc
// @Summary      Hoja de conteo en PDF
// @Tags         inventories
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del inventario"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/count-sheet [get]
func (h *InventoryHandler) CountSheet(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	pdf, filename, err := h.uc.CountSheetPDF(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

func toInventoryResponse(inv *entity.Inventory, lines []*entity.InventoryLine) dto.InventoryResponse {
	out := dto.InventoryResponse{
		ID:           inv.ID,
		CompanyID:    inv.CompanyID,
		WarehouseID:  inv.WarehouseID,
		DocumentDate: inv.DocumentDate,
		Processed:    inv.Processed,
		ProcessedAt:  inv.ProcessedAt,
		Lines:        make([]dto.InventoryLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, toInventoryLineResponse(l))
	}
	return out
}

func toInventoryLineResponse(l *entity.InventoryLine) dto.InventoryLineResponse {
	return dto.InventoryLineResponse{
		ID:            l.ID,
		ProductID:     l.ProductID,
		LocatorID:     l.LocatorID,
		HUID:          l.HUID,
		AttributesKey: l.AttributesKey,
		QtyBook:       l.QtyBook,
		QtyCount:      l.QtyCount,
		UnitMeasure:   l.UnitMeasure,
	}
}
