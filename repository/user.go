package repository

import (
	"context"
	"strings"

	"github.com/tnqbao/gau-sequia-service/domain"
	"github.com/tnqbao/gau-sequia-service/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	row := entity.User{
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	created := toDomainUser(row)
	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var row entity.User
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}
	user := toDomainUser(row)
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	user := toDomainUser(row)
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// ExistsByEmail compares addresses case-insensitively.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, patch domain.ProfilePatch) (*domain.User, error) {
	var row entity.User
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateError(err)
	}

	changes := map[string]interface{}{}
	if patch.FirstName.Set {
		changes["first_name"] = patch.FirstName.Value
	}
	if patch.LastName.Set {
		changes["last_name"] = patch.LastName.Value
	}
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(&row).Updates(changes).Error; err != nil {
			return nil, translateError(err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
