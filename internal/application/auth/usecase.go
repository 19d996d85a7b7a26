package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/atp-api/internal/application/dto"
	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
	"github.com/jhoicas/atp-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig parámetros de firma de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// NewsletterNotifier recibe la bandera de newsletter de un usuario recién creado.
type NewsletterNotifier interface {
	OnNewsletterChanged(ctx context.Context, user *entity.User) error
}

// AuthUseCase registra usuarios dentro de una organización y emite tokens de sesión.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	newsletter  NewsletterNotifier
	jwtCfg      JWTConfig
}

// NewAuthUseCase newsletter puede ser nil: la bandera solo se persiste.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, newsletter NewsletterNotifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, newsletter: newsletter, jwtCfg: jwtCfg}
}

// RegisterUser crea el usuario con la contraseña en bcrypt.
//
// El primer usuario de una empresa queda como admin; los siguientes no pueden
// autoasignarse admin (domain.ErrForbidden) y por defecto son vendedor. Si el
// registro pide newsletter y la inscripción falla, el usuario se elimina y se
// devuelve el error de la inscripción.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	switch {
	case email == "" || in.CompanyID == "":
		return nil, fmt.Errorf("%w: email y company_id son requeridos", domain.ErrInvalidInput)
	case len(in.Password) < minPasswordLen:
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}

	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, in.CompanyID)
	}
	existing, err := uc.userRepo.GetByEmailAndCompany(email, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role, err := uc.registrationRole(in.CompanyID, in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    in.CompanyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		IsNewsletter: in.IsNewsletter,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	if user.IsNewsletter && uc.newsletter != nil {
		if err := uc.newsletter.OnNewsletterChanged(ctx, user); err != nil {
			if dErr := uc.userRepo.Delete(user.ID); dErr != nil {
				return nil, fmt.Errorf("auth: revertir registro: %v: %w", dErr, err)
			}
			return nil, err
		}
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) registrationRole(companyID, requested string) (string, error) {
	if requested != "" && !entity.ValidRole(requested) {
		return "", fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, requested)
	}
	members, err := uc.userRepo.ListByCompany(companyID, 1, 0)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return entity.RoleAdmin, nil
	}
	switch requested {
	case "":
		return entity.RoleVendedor, nil
	case entity.RoleAdmin:
		return "", fmt.Errorf("%w: solo un admin puede crear otro admin", domain.ErrForbidden)
	}
	return requested, nil
}

// Login devuelve domain.ErrUnauthorized tanto para email desconocido como para
// contraseña errada, y domain.ErrForbidden si la cuenta no está activa.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	principal := jwt.Principal{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role}
	token, err := jwt.Sign(uc.jwtCfg.Secret, principal, uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
