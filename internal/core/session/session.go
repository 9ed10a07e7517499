// Package session 服务端会话：cookie 里只放签名令牌，状态在 Store 中
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"size:36;not null" json:"userId"`
	Username  string    `gorm:"size:150;not null" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Store 会话存储；Get 对不存在或已过期的会话返回 ErrNotFound
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
