package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniela/resume-optimizer/internal/config"
	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/types"
)

// fakeProfileStore is an in-memory ProfileStore for service tests.
type fakeProfileStore struct {
	profiles map[uuid.UUID]*db.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*db.Profile)}
}

func (f *fakeProfileStore) CreateProfile(_ context.Context, email, passwordHash, fullName string) (uuid.UUID, error) {
	id := uuid.New()
	f.profiles[id] = &db.Profile{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
	}
	return id, nil
}

func (f *fakeProfileStore) GetProfile(_ context.Context, id uuid.UUID) (*db.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileStore) GetProfileByEmail(_ context.Context, email string) (*db.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileStore) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	p, ok := f.profiles[id]
	if !ok {
		return db.ErrNotFound
	}
	p.PasswordHash = passwordHash
	return nil
}

func testUserService(t *testing.T) (*UserService, *fakeProfileStore) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10")
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)

	store := newFakeProfileStore()
	return NewUserService(store, passwordConfig), store
}

func TestUserService_Register(t *testing.T) {
	service, store := testUserService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, &types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, "Dana Reyes", user.FullName)
	assert.NotEqual(t, uuid.Nil, user.ID)

	// The stored hash must not be the plaintext password.
	stored := store.profiles[user.ID]
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	service, _ := testUserService(t)
	ctx := context.Background()

	req := &types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	}
	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	var dupErr *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dana@example.com", dupErr.Email)
}

func TestUserService_Login(t *testing.T) {
	service, _ := testUserService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	user, err := service.Login(ctx, &types.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
}

func TestUserService_LoginBadCredentials(t *testing.T) {
	service, _ := testUserService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPass := service.Login(ctx, &types.LoginRequest{
		Email:    "dana@example.com",
		Password: "not the password",
	})
	_, unknownEmail := service.Login(ctx, &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})

	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, wrongPass, &invalid)
	assert.ErrorAs(t, unknownEmail, &invalid)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}

func TestUserService_UpdatePassword(t *testing.T) {
	service, _ := testUserService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, &types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "old password here",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(ctx, user.ID, "old password here", "new password here")
	require.NoError(t, err)

	_, err = service.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "old password here"})
	assert.Error(t, err)

	_, err = service.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "new password here"})
	assert.NoError(t, err)
}

func TestUserService_UpdatePasswordMismatch(t *testing.T) {
	service, _ := testUserService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, &types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "old password here",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(ctx, user.ID, "wrong current", "new password here")
	var mismatch *ErrPasswordMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestUserService_UpdatePasswordUnknownUser(t *testing.T) {
	service, _ := testUserService(t)

	err := service.UpdatePassword(context.Background(), uuid.New(), "whatever", "new password here")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
