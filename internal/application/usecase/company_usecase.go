package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
	"github.com/jhoicas/atp-api/pkg/nit"
)

// Estados válidos de una empresa (CHECK de companies.status).
var companyStatuses = map[string]bool{"active": true, "suspended": true, "inactive": true}

// CompanyUseCase administra las organizaciones (tenants). Cada campaña, bodega y
// producto cuelga de una empresa.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create registra la empresa con el NIT normalizado ("123456789-D").
// Dos empresas no pueden compartir NIT: domain.ErrDuplicate.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	taxID, err := nit.Normalize(in.NIT)
	if err != nil {
		return nil, fmt.Errorf("%w: nit %q", domain.ErrInvalidInput, in.NIT)
	}
	switch existing, err := uc.repo.GetByNIT(taxID); {
	case err != nil:
		return nil, err
	case existing != nil:
		return nil, fmt.Errorf("%w: nit %s", domain.ErrDuplicate, taxID)
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.NewString(),
		Name:      name,
		NIT:       taxID,
		Address:   in.Address,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return companyDTO(company), nil
}

func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return companyDTO(company), nil
}

// Update aplica solo los campos enviados. El NIT no se cambia.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Status != nil {
		if !companyStatuses[*in.Status] {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		company.Status = *in.Status
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = time.Now()

	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return companyDTO(company), nil
}

func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	companies, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyListResponse{
		Items: make([]dto.CompanyResponse, len(companies)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for i, c := range companies {
		out.Items[i] = *companyDTO(c)
	}
	return out, nil
}

func (uc *CompanyUseCase) load(id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, id)
	}
	return company, nil
}

func companyDTO(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		NIT:       c.NIT,
		Address:   c.Address,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
