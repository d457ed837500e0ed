package entity

import "time"

const (
	UserRoleAdmin      = "admin"
	UserRoleStoreOwner = "store owner"
	UserRoleUser       = "user"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case UserRoleAdmin, UserRoleStoreOwner, UserRoleUser:
		return true
	}
	return false
}

// DbUser represents a persisted user account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"column:name;type:varchar(60);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(100);uniqueIndex;not null" json:"email"`
	Address      string    `gorm:"column:address;type:varchar(400)" json:"address"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);index;not null;default:'user'" json:"role"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address" binding:"required,max=400"`
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse is returned by signup and login: the caller learns
// nothing beyond its id and role.
type IdentityResponse struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

type UpdatePasswordRequest struct {
	ID          uint   `json:"id" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UserNameResponse struct {
	Name string `json:"name"`
}

// AdminUserCreateRequest is the admin-path payload for creating a user.
type AdminUserCreateRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"required"`
}

// AdminUserUpdateRequest preserves unspecified fields: an omitted
// password leaves the stored hash unchanged.
type AdminUserUpdateRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"`
}

// AdminUserItem is a user row with its owned stores nested, as served
// by the admin user list.
type AdminUserItem struct {
	ID      uint             `json:"id"`
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Address string           `json:"address"`
	Role    string           `json:"role"`
	Stores  []AdminUserStore `json:"stores"`
}

// AdminUserStore is the per-store breakdown inside AdminUserItem.
type AdminUserStore struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"average_rating"`
}
