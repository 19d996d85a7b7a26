package entity

import "time"

// Roles de usuario. admin administra la empresa, bodeguero registra movimientos y
// conteos, vendedor solo consulta disponibilidad.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBodeguero, RoleVendedor:
		return true
	}
	return false
}

// User pertenece a una sola Company, que actúa como su organización.
type User struct {
	ID           string
	CompanyID    string
	Email        string // en minúsculas, único por empresa
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive, suspended
	IsNewsletter bool   // inscrito en la campaña de newsletter por defecto de la organización
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasEmail informa si el usuario tiene dirección de correo.
func (u *User) HasEmail() bool {
	return u != nil && u.Email != ""
}
