package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"slotbook/internal/domains/user/model"
	"slotbook/shared/constant"
	gModel "slotbook/shared/model"
	"slotbook/shared/timezone"
)

type CreateUserRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Level     string
}

func (r *CreateUserRequest) ToModel(createdBy, hashedPassword string) model.User {
	level := r.Level
	if level == "" {
		level = constant.RoleUser
	}

	now := timezone.Now()

	return model.User{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     model.NormalizeEmail(r.Email),
		Password:  hashedPassword,
		Level:     level,
		Active:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

// ProfileResponse is the public projection of an account.
type ProfileResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (p *ProfileResponse) FromModel(user model.User) {
	p.ID = user.ID
	p.FirstName = user.FirstName
	p.LastName = user.LastName
	p.Email = user.Email
	p.Role = user.Level
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
