package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

// NewsletterNotifier recibe el cambio de la bandera de newsletter de un usuario ya persistido.
type NewsletterNotifier interface {
	OnNewsletterChanged(ctx context.Context, user *entity.User) error
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo       repository.UserRepository
	newsletter NewsletterNotifier
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, newsletter NewsletterNotifier) *UserUseCase {
	return &UserUseCase{repo: repo, newsletter: newsletter}
}

// GetByID un usuario de otra empresa se reporta como domain.ErrUserNotFound.
func (uc *UserUseCase) GetByID(companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios de la empresa.
func (uc *UserUseCase) List(companyID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// SetNewsletter persiste la bandera y notifica al handler de newsletter. Si el handler falla
// se restaura el valor anterior y se devuelve su error.
func (uc *UserUseCase) SetNewsletter(ctx context.Context, companyID, userID string, subscribed bool) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if user.IsNewsletter == subscribed {
		return entityToUserResponse(user), nil
	}

	previous := user.IsNewsletter
	if err := uc.repo.SetNewsletter(user.ID, subscribed); err != nil {
		return nil, fmt.Errorf("user: guardar newsletter: %w", err)
	}
	user.IsNewsletter = subscribed
	if uc.newsletter != nil {
		if err := uc.newsletter.OnNewsletterChanged(ctx, user); err != nil {
			if rErr := uc.repo.SetNewsletter(user.ID, previous); rErr != nil {
				return nil, fmt.Errorf("user: restaurar newsletter: %v: %w", rErr, err)
			}
			return nil, err
		}
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Status:       u.Status,
		IsNewsletter: u.IsNewsletter,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
