// Package marketing inscripción al newsletter y campañas de las organizaciones.
package marketing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// CampaignMissingError la organización del usuario no tiene campaña de newsletter por defecto.
// errors.Is(err, domain.ErrNewsletterCampaignMissing) es verdadero.
type CampaignMissingError struct {
	CompanyID   string
	CompanyName string
}

func (e *CampaignMissingError) Error() string {
	return fmt.Sprintf("la organización %q no tiene campaña de newsletter por defecto", e.CompanyName)
}

func (e *CampaignMissingError) Unwrap() error {
	return domain.ErrNewsletterCampaignMissing
}

// NewsletterHandler inscribe o retira al usuario de la campaña de newsletter de su
// organización. Lo invoca el flujo de usuarios después de persistir el cambio de la bandera.
type NewsletterHandler struct {
	campaignRepo repository.CampaignRepository
	companyRepo  repository.CompanyRepository
	platform     PlatformSync
	log          zerolog.Logger
}

// NewNewsletterHandler construye el handler. platform puede ser nil.
func NewNewsletterHandler(
	campaignRepo repository.CampaignRepository,
	companyRepo repository.CompanyRepository,
	platform PlatformSync,
	log zerolog.Logger,
) *NewsletterHandler {
	return &NewsletterHandler{
		campaignRepo: campaignRepo,
		companyRepo:  companyRepo,
		platform:     platform,
		log:          log,
	}
}

// OnNewsletterChanged aplica el estado actual de user.IsNewsletter.
func (h *NewsletterHandler) OnNewsletterChanged(ctx context.Context, user *entity.User) error {
	if user == nil {
		return domain.ErrInvalidInput
	}
	campaign, err := h.campaignRepo.GetDefaultNewsletter(ctx, user.CompanyID)
	if err != nil {
		return fmt.Errorf("newsletter: obtener campaña: %w", err)
	}

	if user.IsNewsletter {
		if campaign == nil {
			return h.campaignMissing(user.CompanyID)
		}
		return h.subscribe(ctx, campaign, user)
	}
	if campaign == nil {
		return nil
	}
	return h.unsubscribe(ctx, campaign, user)
}

func (h *NewsletterHandler) subscribe(ctx context.Context, campaign *entity.Campaign, user *entity.User) error {
	if !user.HasEmail() {
		h.log.Debug().Str("user_id", user.ID).Msg("newsletter: usuario sin email, no se inscribe")
		return nil
	}
	contact := &entity.CampaignContact{
		CampaignID: campaign.ID,
		UserID:     user.ID,
		Email:      user.Email,
		CreatedAt:  time.Now(),
	}
	if err := h.campaignRepo.AddContact(ctx, contact); err != nil {
		return fmt.Errorf("newsletter: inscribir contacto: %w", err)
	}
	if h.platform != nil && campaign.PlatformListID != "" {
		err := h.platform.Subscribe(ctx, campaign.PlatformListID, PlatformContact{
			Email:     user.Email,
			Name:      user.Name,
			UserID:    user.ID,
			CompanyID: user.CompanyID,
		})
		if err != nil {
			h.log.Warn().Err(err).Str("user_id", user.ID).Str("campaign_id", campaign.ID).
				Msg("newsletter: sincronización con la plataforma fallida")
		}
	}
	h.log.Info().Str("user_id", user.ID).Str("campaign_id", campaign.ID).Msg("newsletter: usuario inscrito")
	return nil
}

func (h *NewsletterHandler) unsubscribe(ctx context.Context, campaign *entity.Campaign, user *entity.User) error {
	if err := h.campaignRepo.RemoveContact(ctx, campaign.ID, user.ID); err != nil {
		return fmt.Errorf("newsletter: retirar contacto: %w", err)
	}
	if h.platform != nil && campaign.PlatformListID != "" && user.HasEmail() {
		if err := h.platform.Unsubscribe(ctx, campaign.PlatformListID, user.Email); err != nil {
			h.log.Warn().Err(err).Str("user_id", user.ID).Str("campaign_id", campaign.ID).
				Msg("newsletter: sincronización con la plataforma fallida")
		}
	}
	h.log.Info().Str("user_id", user.ID).Str("campaign_id", campaign.ID).Msg("newsletter: usuario retirado")
	return nil
}

func (h *NewsletterHandler) campaignMissing(companyID string) error {
	name := companyID
	if company, err := h.companyRepo.GetByID(companyID); err == nil && company != nil {
		name = company.Name
	}
	return &CampaignMissingError{CompanyID: companyID, CompanyName: name}
}
