package dto

import (
	"encoding/json"
	"time"

	"bookshelf_backend/internals/features/users/user/model"
	helper "bookshelf_backend/internals/helpers"
)

// ============================
// Response DTO
// ============================

type UserDTO struct {
	ID          string          `json:"id"`
	UserName    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	FullName    string          `json:"fullname"`
	Avatar      *string         `json:"avatar"`
	Preferences json.RawMessage `json:"preferences"`
	DateJoined  time.Time       `json:"date_joined"`
}

// ============================
// Update Request DTO
// ============================

// UpdateUserRequest datang sebagai multipart form (avatar berupa file).
type UpdateUserRequest struct {
	UserName    *string `form:"username" validate:"omitempty,min=3,max=150"`
	FirstName   *string `form:"first_name" validate:"omitempty,max=150"`
	LastName    *string `form:"last_name" validate:"omitempty,max=150"`
	Preferences *string `form:"preferences" validate:"omitempty,json"`
}

// ============================
// Converter
// ============================

func ToUserDTO(u model.UserModel) UserDTO {
	dto := UserDTO{
		ID:          u.ID.String(),
		UserName:    u.UserName,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		DateJoined:  u.DateJoined,
		Preferences: json.RawMessage(u.Preferences),
	}
	if len(dto.Preferences) == 0 {
		dto.Preferences = json.RawMessage("{}")
	}
	if u.Avatar != nil && *u.Avatar != "" {
		url := helper.PublicMediaURL(*u.Avatar)
		dto.Avatar = &url
	}
	return dto
}
