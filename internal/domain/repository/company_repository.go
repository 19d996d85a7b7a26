package repository

import (
	"context"

	"github.com/jhoicas/atp-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	Delete(id string) error
	// HasActiveModule indica si la empresa tiene el módulo activo y vigente.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
	// ActivateModule activa (o reactiva) un módulo para la empresa.
	ActivateModule(ctx context.Context, module *entity.CompanyModule) error
}
