package dto

import "time"

// CreateCampaignRequest body para POST /api/campaigns.
type CreateCampaignRequest struct {
	Name                string `json:"name" validate:"required,max=200"`
	IsDefaultNewsletter bool   `json:"is_default_newsletter"`
	PlatformListID      string `json:"platform_list_id,omitempty"`
}

// CampaignResponse salida de una campaña.
type CampaignResponse struct {
	ID                  string    `json:"id"`
	CompanyID           string    `json:"company_id"`
	Name                string    `json:"name"`
	IsDefaultNewsletter bool      `json:"is_default_newsletter"`
	PlatformListID      string    `json:"platform_list_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// CampaignContactResponse contacto inscrito en una campaña.
type CampaignContactResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
