package dto

import "time"

type AdminLoginRequestDTO struct {
	AdminKey string `json:"adminKey" example:"s3cret"`
}

type AdminLoginResponseDTO struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type AdminUserDTO struct {
	Phone     string    `json:"phone" example:"13800138000"`
	Credits   int       `json:"credits" example:"5"`
	HasPIN    bool      `json:"hasPin" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2024-05-01T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-05-01T12:00:00Z"`
}

type AdminUsersResponseDTO struct {
	Users []AdminUserDTO `json:"users"`
}

type AddCreditsRequestDTO struct {
	Phone   string `json:"phone" example:"13800138000"`
	Credits int    `json:"credits,omitempty" example:"3"`
}

type AddCreditsResponseDTO struct {
	Success      bool   `json:"success" example:"true"`
	Phone        string `json:"phone" example:"13800138000"`
	CreditsAdded int    `json:"creditsAdded" example:"3"`
	TotalCredits int    `json:"totalCredits" example:"8"`
}
