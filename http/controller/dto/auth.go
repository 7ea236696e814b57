package dto

import (
	"time"

	"github.com/tnqbao/gau-sequia-service/domain"
)

type RegisterRequestDTO struct {
	Username  string `json:"username" form:"username" binding:"required,max=150"`
	Email     string `json:"email" form:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" form:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" form:"last_name" binding:"max=150"`
	Password  string `json:"password" form:"password" binding:"required"`
	Password2 string `json:"password2" form:"password2" binding:"required"`
}

func (r RegisterRequestDTO) ToInput() domain.RegisterInput {
	return domain.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
		Password2: r.Password2,
	}
}

type LoginRequestDTO struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RefreshRequestDTO struct {
	Refresh string `json:"refresh" binding:"required"`
}

type PasswordChangeRequestDTO struct {
	OldPassword  string `json:"old_password" binding:"required"`
	NewPassword  string `json:"new_password" binding:"required"`
	NewPassword2 string `json:"new_password2" binding:"required"`
}

type UserResponseDTO struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserResponse(u *domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.CreatedAt,
	}
}
