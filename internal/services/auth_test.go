package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/service"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
)

type fakeWorkerRepo struct {
	workers []*entities.Worker
}

func (f *fakeWorkerRepo) FindByID(ctx context.Context, id string) (*entities.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeWorkerRepo) FindByEmail(ctx context.Context, email string) (*entities.Worker, error) {
	for _, w := range f.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeWorkerRepo) GetOptions(ctx context.Context) ([]dto.OptionDTO, error) {
	return nil, nil
}

type fakeJWT struct {
	claims      *service.JwtCustomClaim
	validateErr error
}

func (f *fakeJWT) GenerateTokens(userID, role string) (string, string, error) {
	return "access-" + userID, "refresh-" + userID, nil
}

func (f *fakeJWT) ValidateToken(tokenString string) (*service.JwtCustomClaim, error) {
	return f.claims, f.validateErr
}

func (f *fakeJWT) GetAccessTokenTTL() time.Duration  { return time.Hour }
func (f *fakeJWT) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }

type fakeCacheRepo struct {
	values  map[string]string
	deleted []string
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	if s, ok := value.(string); ok {
		f.values[key] = s
	}
	return nil
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func seedWorker(t *testing.T, password string) *entities.Worker {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entities.Worker{
		ID:           workerActor.ID,
		Name:         "Jordan Crew",
		Email:        "jordan@floors.test",
		PasswordHash: hash,
		Role:         entities.RoleWorker,
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&fakeWorkerRepo{}, &fakeJWT{}, nil, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "nobody@floors.test", Password: "pw"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown email is indistinguishable from a bad password")
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := &fakeWorkerRepo{workers: []*entities.Worker{seedWorker(t, "right-password")}}
	svc := NewAuthService(repo, &fakeJWT{}, nil, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "jordan@floors.test", Password: "wrong-password"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LoginSuccess(t *testing.T) {
	worker := seedWorker(t, "right-password")
	repo := &fakeWorkerRepo{workers: []*entities.Worker{worker}}
	svc := NewAuthService(repo, &fakeJWT{}, nil, zap.NewNop())

	result, err := svc.Login(context.Background(), dto.LoginDTO{Email: "jordan@floors.test", Password: "right-password"})
	require.NoError(t, err)

	assert.Equal(t, "access-"+worker.ID, result.Tokens.AccessToken)
	assert.Equal(t, worker.Role, result.Worker.Role)
	assert.Equal(t, worker.Email, result.Worker.Email)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	jwtSvc := &fakeJWT{claims: &service.JwtCustomClaim{UserID: workerActor.ID, IsRefreshToken: false}}
	svc := NewAuthService(&fakeWorkerRepo{}, jwtSvc, nil, zap.NewNop())

	_, err := svc.Refresh(context.Background(), "some-access-token")

	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestAuthService_RefreshUnknownWorker(t *testing.T) {
	jwtSvc := &fakeJWT{claims: &service.JwtCustomClaim{UserID: "gone", IsRefreshToken: true}}
	svc := NewAuthService(&fakeWorkerRepo{}, jwtSvc, nil, zap.NewNop())

	_, err := svc.Refresh(context.Background(), "refresh-token")

	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_RefreshDropsCachedRole(t *testing.T) {
	worker := seedWorker(t, "pw")
	worker.Role = entities.RoleAdmin
	repo := &fakeWorkerRepo{workers: []*entities.Worker{worker}}

	// Stale role cached from before the promotion.
	cache := &fakeCacheRepo{values: map[string]string{roleCacheKey(worker.ID): entities.RoleWorker}}
	roleSvc := NewWorkerRoleService(repo, cache, zap.NewNop(), time.Minute)

	jwtSvc := &fakeJWT{claims: &service.JwtCustomClaim{UserID: worker.ID, Role: entities.RoleWorker, IsRefreshToken: true}}
	svc := NewAuthService(repo, jwtSvc, roleSvc, zap.NewNop())

	pair, err := svc.Refresh(context.Background(), "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "refresh-"+worker.ID, pair.RefreshToken)

	assert.Contains(t, cache.deleted, roleCacheKey(worker.ID))

	role, err := roleSvc.ResolveRole(context.Background(), worker.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, role, "the middleware now sees the database role")
}
