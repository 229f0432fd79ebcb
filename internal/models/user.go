package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleReader Role = "READER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole accepts any letter case and reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// CanPublish reports whether the role may own posts.
func (r Role) CanPublish() bool {
	return r == RoleAuthor || r == RoleAdmin
}

type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email     string    `gorm:"size:255" json:"email"`
	Role      Role      `gorm:"size:16;not null;default:READER;index" json:"role"`
	Avatar    string    `json:"avatar"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse is the owner/admin view, including email.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

// ToPublic hides contact details from other users.
func (u *User) ToPublic() UserResponse {
	r := u.ToResponse()
	r.Email = ""
	return r
}
