package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si la empresa no tiene el módulo contratado.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

// ActivateModule activa un módulo para una empresa existente.
func (s *ModuleService) ActivateModule(ctx context.Context, companyID, moduleName string, expiresAt *time.Time) error {
	if moduleName != entity.ModuleInventory && moduleName != entity.ModuleMarketing {
		return domain.ErrInvalidInput
	}
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return fmt.Errorf("module: obtener empresa: %w", err)
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return s.companyRepo.ActivateModule(ctx, &entity.CompanyModule{
		CompanyID:   companyID,
		ModuleName:  moduleName,
		IsActive:    true,
		ActivatedAt: time.Now(),
		ExpiresAt:   expiresAt,
	})
}
