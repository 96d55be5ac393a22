// internal/domain/customer/entity.go
package customer

import (
	"time"
)

// Customer represents a storefront account
type Customer struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"not null;size:100" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string     `gorm:"not null;size:255" json:"-"` // bcrypt digest
	IsAdmin     bool       `gorm:"default:false" json:"is_admin"`
	DateJoined  time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customer"
}

// RegisterRequest represents the signup form
type RegisterRequest struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password1" json:"password"`
	ConfirmPassword string `form:"password2" json:"confirm_password"`
}

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}
