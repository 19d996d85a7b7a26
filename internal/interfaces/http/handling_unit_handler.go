package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/application/usecase"
)

// HandlingUnitHandler unidades de manipulación (pallets, cajas) y su contenido.
type HandlingUnitHandler struct {
	uc *usecase.HandlingUnitUseCase
}

// NewHandlingUnitHandler construye el handler.
func NewHandlingUnitHandler(uc *usecase.HandlingUnitUseCase) *HandlingUnitHandler {
	return &HandlingUnitHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar unidad de manipulación
// @Tags         handling-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHandlingUnitRequest  true  "value, warehouse_id, locator_id, parent_id, status"
// @Success      201   {object}  dto.HandlingUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/handling-units [post]
func (h *HandlingUnitHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateHandlingUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar unidades de una bodega
// @Tags         handling-units
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  int     true   "ID de la bodega"
// @Param        status        query  string  false  "planning, active, picked, issued, destroyed"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.HandlingUnitListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/handling-units [get]
func (h *HandlingUnitHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	warehouseID := int64(c.QueryInt("warehouse_id", 0))
	if warehouseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), companyID, warehouseID, c.Query("status"), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una unidad
// @Tags         handling-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                                  true  "ID de la unidad"
// @Param        body  body  dto.UpdateHandlingUnitStatusRequest  true  "status"
// @Success      200   {object}  dto.HandlingUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/handling-units/{id}/status [patch]
func (h *HandlingUnitHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateHandlingUnitStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), id, in.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// SetStorage godoc
// @Summary      Fijar cantidad de un producto en la unidad
// @Tags         handling-units
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                      true  "ID de la unidad"
// @Param        body  body  dto.SetHUStorageRequest  true  "product_id, qty, unit_measure"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/handling-units/{id}/storage [put]
func (h *HandlingUnitHandler) SetStorage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.SetHUStorageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetStorage(c.UserContext(), GetCompanyID(c), id, in); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
