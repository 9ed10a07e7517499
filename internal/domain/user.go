package domain

import (
	"context"
	"time"
)

// User 登录账号（员工数据本身不含登录信息）
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string     `gorm:"size:254;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
	SetPassword(ctx context.Context, username, hash string) error
}
