package models

import "time"

type UserRole string

const (
	RoleUploader UserRole = "uploader"
	RoleAdmin    UserRole = "admin"
)

// User is the identity-provider view of an operator. The service never stores
// users itself; they come from Casdoor and are cached.
type User struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Role          UserRole  `json:"role"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
