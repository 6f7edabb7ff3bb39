package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"stayhub-backend/internal/shared/actor"
)

// ===== REQUESTS =====

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Role, validation.In(actor.RoleHost, actor.RoleGuest)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.AvatarURL, validation.When(r.AvatarURL != nil, is.URL)),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
	)
}

// Changes maps the set fields onto update columns
func (r UpdateProfileRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.FullName != nil {
		changes["full_name"] = *r.FullName
	}
	if r.AvatarURL != nil {
		changes["avatar_url"] = *r.AvatarURL
	}
	if r.Bio != nil {
		changes["bio"] = *r.Bio
	}
	return changes
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 72)),
	)
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

func (r SetRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.In(actor.RoleAdmin, actor.RoleHost, actor.RoleGuest)),
	)
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r SetStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(StatusActive, StatusSuspended)),
	)
}

// ===== RESPONSES =====

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
