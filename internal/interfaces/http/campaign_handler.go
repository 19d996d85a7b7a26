package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/application/marketing"
)

// CampaignHandler campañas de marketing (protegido, módulo marketing).
type CampaignHandler struct {
	uc *marketing.CampaignUseCase
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(uc *marketing.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

// Create godoc
// @Summary      Crear campaña
// @Description  Solo puede existir una campaña de newsletter por defecto por organización.
// @Tags         campaigns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCampaignRequest  true  "name, is_default_newsletter, platform_list_id"
// @Success      201   {object}  dto.CampaignResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	camp, err := h.uc.Create(c.UserContext(), companyID, marketing.CreateCampaignInput{
		Name:                in.Name,
		IsDefaultNewsletter: in.IsDefaultNewsletter,
		PlatformListID:      in.PlatformListID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CampaignResponse{
		ID:                  camp.ID,
		CompanyID:           camp.CompanyID,
		Name:                camp.Name,
		IsDefaultNewsletter: camp.IsDefaultNewsletter,
		PlatformListID:      camp.PlatformListID,
		CreatedAt:           camp.CreatedAt,
	})
}

// ListContacts godoc
// @Summary      Contactos de una campaña
// @Tags         campaigns
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la campaña"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}   dto.CampaignContactResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/campaigns/{id}/contacts [get]
func (h *CampaignHandler) ListContacts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := page(c)
	contacts, err := h.uc.ListContacts(c.UserContext(), companyID, c.Params("id"), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.CampaignContactResponse, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, dto.CampaignContactResponse{UserID: ct.UserID, Email: ct.Email, CreatedAt: ct.CreatedAt})
	}
	return c.JSON(out)
}
