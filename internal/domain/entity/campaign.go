package entity

import "time"

// Campaign campaña de marketing de una organización.
// A lo sumo una campaña por organización es la de newsletter por defecto.
type Campaign struct {
	ID                  string
	CompanyID           string
	Name                string
	IsDefaultNewsletter bool
	PlatformListID      string // lista equivalente en la plataforma externa (opcional)
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CampaignContact usuario inscrito en una campaña.
type CampaignContact struct {
	CampaignID string
	UserID     string
	Email      string
	CreatedAt  time.Time
}
