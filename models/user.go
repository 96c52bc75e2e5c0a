package models

import (
	"time"
)

// Role values stored on users.role.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	UserID    int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Password  string     `gorm:"column:password" json:"-"`
	Role      string     `gorm:"column:role;default:USER" json:"role"`
	// Placeholder users exist only so a judge row can satisfy its user FK
	// before a real person claims it with the access code.
	IsPlaceholder bool       `gorm:"column:is_placeholder" json:"is_placeholder"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Applications []Application `gorm:"foreignKey:UserID" json:"applications,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
