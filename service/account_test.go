package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-sequia-service/domain"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]domain.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user domain.User) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, domain.ErrConflict
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id uint, patch domain.ProfilePatch) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.FirstName.Set {
		u.FirstName = patch.FirstName.Value
	}
	if patch.LastName.Set {
		u.LastName = patch.LastName.Value
	}
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uint, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func newTestAccountService() (*AccountService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAccountService(store, WithBcryptCost(bcrypt.MinCost)), store
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Username:  "mcontreras",
		Email:     "maria@example.cl",
		FirstName: "María",
		LastName:  "Contreras",
		Password:  "Acuifero#2024",
		Password2: "Acuifero#2024",
	}
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
	return vErr.Field
}

func TestRegister(t *testing.T) {
	svc, store := newTestAccountService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Acuifero#2024", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users[user.ID].PasswordHash), []byte("Acuifero#2024")))

	t.Run("duplicate username", func(t *testing.T) {
		in := registerInput()
		in.Email = "otra@example.cl"
		_, err := svc.Register(ctx, in)
		assert.Equal(t, "username", validationField(t, err))
	})

	t.Run("duplicate email ignores case", func(t *testing.T) {
		in := registerInput()
		in.Username = "otra"
		in.Email = "MARIA@example.cl"
		_, err := svc.Register(ctx, in)
		assert.Equal(t, "email", validationField(t, err))
	})
}

func TestRegister_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*domain.RegisterInput)
		field string
	}{
		{"mismatched confirmation", func(in *domain.RegisterInput) { in.Password2 = "otra-cosa-123" }, "password2"},
		{"short password", func(in *domain.RegisterInput) { in.Password, in.Password2 = "Ab1#", "Ab1#" }, "password"},
		{"numeric password", func(in *domain.RegisterInput) { in.Password, in.Password2 = "90817263", "90817263" }, "password"},
		{"common password", func(in *domain.RegisterInput) { in.Password, in.Password2 = "Password123", "Password123" }, "password"},
		{"similar to username", func(in *domain.RegisterInput) { in.Password, in.Password2 = "mcontreras99", "mcontreras99" }, "password"},
		{"invalid username", func(in *domain.RegisterInput) { in.Username = "con espacio" }, "username"},
		{"missing email", func(in *domain.RegisterInput) { in.Email = " " }, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestAccountService()
			in := registerInput()
			tc.edit(&in)

			_, err := svc.Register(context.Background(), in)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Equal(t, tc.field, validationField(t, err))
			assert.Empty(t, store.users)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, " mcontreras ", "Acuifero#2024")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "mcontreras", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nadie", "Acuifero#2024")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()
	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.ChangePassword(ctx, user.ID, "Acuifero#2024", "Nuevo#Caudal7", "Nuevo#Caudal8")
	assert.Equal(t, "new_password2", validationField(t, err))

	_, err = svc.ChangePassword(ctx, user.ID, "equivocada", "Nuevo#Caudal7", "Nuevo#Caudal7")
	assert.Equal(t, "old_password", validationField(t, err))

	_, err = svc.ChangePassword(ctx, user.ID, "Acuifero#2024", "1234567890", "1234567890")
	assert.Equal(t, "password", validationField(t, err))

	_, err = svc.ChangePassword(ctx, user.ID, "Acuifero#2024", "Nuevo#Caudal7", "Nuevo#Caudal7")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "mcontreras", "Acuifero#2024")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "mcontreras", "Nuevo#Caudal7")
	assert.NoError(t, err)

	_, err = svc.ChangePassword(ctx, 404, "a", "Nuevo#Caudal7", "Nuevo#Caudal7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()
	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, domain.ProfilePatch{FirstName: domain.Some("María José")})
	require.NoError(t, err)
	assert.Equal(t, "María José", updated.FirstName)
	assert.Equal(t, "Contreras", updated.LastName)
	assert.Equal(t, "maria@example.cl", updated.Email)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Humedal#Sur42", "pedro", "pedro@example.cl"))
	assert.Error(t, ValidatePassword("pedro2024!", "pedro"))
	assert.Error(t, ValidatePassword("maria.rojas1", "x", "maria.rojas@example.cl"))
	assert.NoError(t, ValidatePassword("Humedal#Sur42", "", "ab"))
}
