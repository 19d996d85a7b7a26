package repository

import (
	"context"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// CampaignRepository campañas de marketing y sus contactos.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	// GetDefaultNewsletter devuelve nil, nil si la organización no tiene campaña por defecto.
	GetDefaultNewsletter(ctx context.Context, companyID string) (*entity.Campaign, error)
	// AddContact es idempotente por (campaña, usuario).
	AddContact(ctx context.Context, contact *entity.CampaignContact) error
	RemoveContact(ctx context.Context, campaignID, userID string) error
	ListContacts(ctx context.Context, campaignID string, limit, offset int) ([]*entity.CampaignContact, error)
}
