package domain

import "time"

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"date_joined"`
}

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Password2 string
}

type ProfilePatch struct {
	FirstName Field[string] `json:"first_name"`
	LastName  Field[string] `json:"last_name"`
}
