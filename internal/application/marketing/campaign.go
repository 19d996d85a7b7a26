package marketing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// CampaignUseCase alta de campañas y consulta de contactos.
type CampaignUseCase struct {
	repo repository.CampaignRepository
}

// NewCampaignUseCase construye el caso de uso.
func NewCampaignUseCase(repo repository.CampaignRepository) *CampaignUseCase {
	return &CampaignUseCase{repo: repo}
}

// CreateCampaignInput datos de una campaña nueva.
type CreateCampaignInput struct {
	Name                string
	IsDefaultNewsletter bool
	PlatformListID      string
}

// Create crea la campaña. Si ya existe una campaña de newsletter por defecto para la
// organización y se pide otra, devuelve domain.ErrDuplicate.
func (uc *CampaignUseCase) Create(ctx context.Context, companyID string, in CreateCampaignInput) (*entity.Campaign, error) {
	name := strings.TrimSpace(in.Name)
	if companyID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.IsDefaultNewsletter {
		existing, err := uc.repo.GetDefaultNewsletter(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("campaign: obtener campaña por defecto: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	c := &entity.Campaign{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		Name:                name,
		IsDefaultNewsletter: in.IsDefaultNewsletter,
		PlatformListID:      strings.TrimSpace(in.PlatformListID),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListContacts contactos de una campaña de la empresa.
func (uc *CampaignUseCase) ListContacts(ctx context.Context, companyID, campaignID string, limit, offset int) ([]*entity.CampaignContact, error) {
	c, err := uc.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign: obtener campaña: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.repo.ListContacts(ctx, campaignID, limit, offset)
}
