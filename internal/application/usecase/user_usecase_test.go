package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atp-api/internal/domain"
	"github.com/jhoicas/atp-api/internal/domain/entity"
	"github.com/jhoicas/atp-api/internal/domain/repository"
)

type memUsers struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (m *memUsers) GetByID(id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) SetNewsletter(id string, subscribed bool) error {
	m.byID[id].IsNewsletter = subscribed
	return nil
}

type notifierFunc func(ctx context.Context, u *entity.User) error

func (f notifierFunc) OnNewsletterChanged(ctx context.Context, u *entity.User) error { return f(ctx, u) }

func newUsers() *memUsers {
	return &memUsers{byID: map[string]*entity.User{
		"u-1": {ID: "u-1", CompanyID: "c-1", Email: "ana@acme.co"},
	}}
}

func TestSetNewsletter_NotificaConLaBanderaPersistida(t *testing.T) {
	repo := newUsers()
	var seen *entity.User
	uc := NewUserUseCase(repo, notifierFunc(func(_ context.Context, u *entity.User) error {
		seen = u
		return nil
	}))

	resp, err := uc.SetNewsletter(context.Background(), "c-1", "u-1", true)
	require.NoError(t, err)
	assert.True(t, resp.IsNewsletter)
	require.NotNil(t, seen)
	assert.True(t, seen.IsNewsletter)
	assert.True(t, repo.byID["u-1"].IsNewsletter)
}

func TestSetNewsletter_FalloDelHandlerRestaura(t *testing.T) {
	repo := newUsers()
	uc := NewUserUseCase(repo, notifierFunc(func(context.Context, *entity.User) error {
		return domain.ErrNewsletterCampaignMissing
	}))

	_, err := uc.SetNewsletter(context.Background(), "c-1", "u-1", true)
	assert.True(t, errors.Is(err, domain.ErrNewsletterCampaignMissing))
	assert.False(t, repo.byID["u-1"].IsNewsletter, "la bandera vuelve a su valor anterior")
}

func TestSetNewsletter_SinCambioNoNotifica(t *testing.T) {
	called := false
	uc := NewUserUseCase(newUsers(), notifierFunc(func(context.Context, *entity.User) error {
		called = true
		return nil
	}))

	_, err := uc.SetNewsletter(context.Background(), "c-1", "u-1", false)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestSetNewsletter_OtraEmpresa(t *testing.T) {
	uc := NewUserUseCase(newUsers(), nil)

	_, err := uc.SetNewsletter(context.Background(), "c-2", "u-1", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.SetNewsletter(context.Background(), "c-1", "nadie", true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByID_UsuarioDeOtraEmpresaNoSeExpone(t *testing.T) {
	uc := NewUserUseCase(newUsers(), nil)

	out, err := uc.GetByID("c-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.co", out.Email)

	_, err = uc.GetByID("c-2", "u-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.GetByID("c-1", "u-9")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
