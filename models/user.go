package models

import (
	"slices"
	"time"
)

type UserRole = string

const (
	RoleUser        UserRole = "ROLE_USER"
	RoleContributor UserRole = "ROLE_CONTRIBUTOR"
	RoleAdmin       UserRole = "ROLE_ADMIN"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FullName  string     `gorm:"size:150" json:"full_name"`
	Email     string     `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	Roles     []UserRole `gorm:"type:text;serializer:json" json:"roles"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Programs []Program `gorm:"foreignKey:OwnerID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}

// GetRoles returns the stored roles plus RoleUser, which every user has.
func (u *User) GetRoles() []UserRole {
	roles := make([]UserRole, 0, len(u.Roles)+1)
	for _, r := range u.Roles {
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) HasRole(role UserRole) bool {
	return slices.Contains(u.GetRoles(), role)
}
