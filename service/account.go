package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tnqbao/gau-sequia-service/domain"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]{1,150}$`)

type UserStore interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uint, patch domain.ProfilePatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// AccountService owns registration, credential checks and profile changes.
type AccountService struct {
	store UserStore
	cost  int
}

type AccountOption func(*AccountService)

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AccountOption {
	return func(s *AccountService) {
		s.cost = cost
	}
}

func NewAccountService(store UserStore, opts ...AccountOption) *AccountService {
	if store == nil {
		panic("user store is required")
	}
	s := &AccountService{store: store, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AccountService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if !usernamePattern.MatchString(in.Username) {
		return nil, domain.NewValidationError("username", "Introduzca un nombre de usuario válido. Solo letras, números y los caracteres @/./+/-/_.")
	}
	if in.Email == "" {
		return nil, domain.NewValidationError("email", "Este campo es obligatorio.")
	}

	exists, err := s.store.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, domain.NewValidationError("username", "Ya existe un usuario con este nombre.")
	}

	exists, err = s.store.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.NewValidationError("email", "Este email ya está registrado.")
	}

	if in.Password != in.Password2 {
		return nil, domain.NewValidationError("password2", "Las contraseñas no coinciden.")
	}
	if err := ValidatePassword(in.Password, in.Username, in.FirstName, in.LastName, in.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: string(hash),
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil, domain.NewValidationError("username", "Ya existe un usuario con este nombre.")
	}
	return user, err
}

// Authenticate returns domain.ErrInvalidCredentials for an unknown user or a
// wrong password alike.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *AccountService) UpdateProfile(ctx context.Context, id uint, patch domain.ProfilePatch) (*domain.User, error) {
	return s.store.UpdateProfile(ctx, id, patch)
}

func (s *AccountService) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword, newPassword2 string) (*domain.User, error) {
	if newPassword != newPassword2 {
		return nil, domain.NewValidationError("new_password2", "Las contraseñas no coinciden.")
	}

	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(newPassword, user.Username, user.FirstName, user.LastName, user.Email); err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return nil, domain.NewValidationError("old_password", "La contraseña actual no es correcta.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, id, string(hash)); err != nil {
		return nil, err
	}
	return user, nil
}
