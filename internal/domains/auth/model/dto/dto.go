package dto

import (
	"slotbook/infras/jwt"
	userModel "slotbook/internal/domains/user/model"
	userDto "slotbook/internal/domains/user/model/dto"
)

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name"  validate:"required,notblank,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
}

func (r *RegisterRequest) ToCreateUser() userDto.CreateUserRequest {
	return userDto.CreateUserRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	t.AccessToken = pair.AccessToken
	t.RefreshToken = pair.RefreshToken
	t.TokenType = pair.TokenType
	t.ExpiresIn = pair.ExpiresIn
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	TokenResponse
	User userDto.ProfileResponse `json:"user"`
}

func (a *AuthResponse) From(pair *jwt.TokenPair, user userModel.User) {
	a.FromTokenPair(pair)
	a.User.FromModel(user)
}
