package entity

import "time"

// Company representa una organización/tenant del sistema. Las campañas de marketing,
// bodegas y productos pertenecen a una empresa.
type Company struct {
	ID        string
	Name      string
	NIT       string
	Address   string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos contratables (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleInventory = "inventory"
	ModuleMarketing = "marketing"
)

// CompanyModule representa la activación de un módulo en una empresa.
type CompanyModule struct {
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
}
