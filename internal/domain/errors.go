package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrInventoryProcessed el documento de inventario ya fue procesado y no admite cambios.
	ErrInventoryProcessed = errors.New("el inventario ya fue procesado")
	// ErrNewsletterCampaignMissing la organización no tiene campaña de newsletter por defecto.
	ErrNewsletterCampaignMissing = errors.New("la organización no tiene campaña de newsletter por defecto")
)
