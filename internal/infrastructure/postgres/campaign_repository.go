package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

// CampaignRepo campañas de marketing sobre PostgreSQL.
type CampaignRepo struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository construye el adaptador.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignColumns = `id, company_id, name, is_default_newsletter, platform_list_id, created_at, updated_at`

func scanCampaign(row pgx.Row) (*entity.Campaign, error) {
	var c entity.Campaign
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.IsDefaultNewsletter, &c.PlatformListID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste la campaña. El índice parcial único impide dos campañas por defecto.
func (r *CampaignRepo) Create(ctx context.Context, c *entity.Campaign) error {
	query := `INSERT INTO campaigns (` + campaignColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, c.ID, c.CompanyID, c.Name, c.IsDefaultNewsletter, c.PlatformListID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID obtiene una campaña por ID.
func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	return r.get(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
}

// GetDefaultNewsletter campaña de newsletter por defecto de la organización.
func (r *CampaignRepo) GetDefaultNewsletter(ctx context.Context, companyID string) (*entity.Campaign, error) {
	return r.get(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE company_id = $1 AND is_default_newsletter`, companyID)
}

func (r *CampaignRepo) get(ctx context.Context, query, arg string) (*entity.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

// AddContact inscribe al usuario; si ya estaba solo actualiza el email.
func (r *CampaignRepo) AddContact(ctx context.Context, c *entity.CampaignContact) error {
	query := `
		INSERT INTO campaign_contacts (campaign_id, user_id, email, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id, user_id) DO UPDATE SET email = EXCLUDED.email`
	if _, err := r.pool.Exec(ctx, query, c.CampaignID, c.UserID, c.Email, c.CreatedAt); err != nil {
		return fmt.Errorf("add campaign contact: %w", err)
	}
	return nil
}

// RemoveContact retira al usuario de la campaña. No falla si no estaba inscrito.
func (r *CampaignRepo) RemoveContact(ctx context.Context, campaignID, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaign_contacts WHERE campaign_id = $1 AND user_id = $2`, campaignID, userID)
	if err != nil {
		return fmt.Errorf("remove campaign contact: %w", err)
	}
	return nil
}

// ListContacts contactos de la campaña con paginación.
func (r *CampaignRepo) ListContacts(ctx context.Context, campaignID string, limit, offset int) ([]*entity.CampaignContact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT campaign_id, user_id, email, created_at FROM campaign_contacts
		 WHERE campaign_id = $1 ORDER BY created_at, user_id LIMIT $2 OFFSET $3`, campaignID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list campaign contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CampaignContact
	for rows.Next() {
		var c entity.CampaignContact
		if err := rows.Scan(&c.CampaignID, &c.UserID, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
