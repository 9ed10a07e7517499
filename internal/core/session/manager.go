package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"employee-directory/internal/core/auth"
	"employee-directory/internal/domain"
)

const ContextKey = "session"

type CookieOptions struct {
	Name   string
	Secure bool
}

type Manager struct {
	store  Store
	tokens *auth.JWTer
	cookie CookieOptions
}

func NewManager(store Store, tokens *auth.JWTer, cookie CookieOptions) *Manager {
	if cookie.Name == "" {
		cookie.Name = "sessionid"
	}
	return &Manager{store: store, tokens: tokens, cookie: cookie}
}

// Start 为已通过认证的用户建立会话并写 cookie
func (m *Manager) Start(c *gin.Context, u *domain.User) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.tokens.TTL),
	}
	if err := m.store.Save(c.Request.Context(), sess); err != nil {
		return nil, err
	}
	tok, err := m.tokens.Issue(sess.ID, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	m.setCookie(c, tok, int(m.tokens.TTL.Seconds()))
	return sess, nil
}

// Load 校验 cookie 签名后再查存储，登出过的会话在存储里已不存在
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(m.cookie.Name)
	if err != nil || raw == "" {
		return nil, ErrNotFound
	}
	claims, err := m.tokens.Parse(raw)
	if err != nil {
		return nil, ErrNotFound
	}
	sess, err := m.store.Get(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.Subject {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (m *Manager) Destroy(c *gin.Context) error {
	defer m.setCookie(c, "", -1)
	sess, err := m.Load(c)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return m.store.Delete(c.Request.Context(), sess.ID)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie.Name, value, maxAge, "/", "", m.cookie.Secure, true)
}

// Current 取出中间件放进上下文的会话
func Current(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}
