package marketing

import "context"

// PlatformContact contacto enviado a la plataforma externa de marketing.
type PlatformContact struct {
	Email     string
	Name      string
	UserID    string
	CompanyID string
}

// PlatformSync puerto hacia la plataforma externa de email marketing (listas de contactos).
// Opcional: si no está configurada, la inscripción solo se registra localmente.
type PlatformSync interface {
	Subscribe(ctx context.Context, listID string, contact PlatformContact) error
	Unsubscribe(ctx context.Context, listID, email string) error
}
