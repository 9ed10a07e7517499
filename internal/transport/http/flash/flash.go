// Package flash 一次性提示消息：重定向前写入，下一个渲染的页面取出
package flash

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"employee-directory/internal/core/auth"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Error   Level = "error"

	CookieName = "flash"
	ttl        = 5 * time.Minute
	ctxKey     = "flash.pending"
)

type Message struct {
	Level Level  `json:"l"`
	Text  string `json:"t"`
}

type claims struct {
	jwt.RegisteredClaims
	Messages []Message `json:"msgs"`
}

// Store 消息放在签名 cookie 里，客户端无法伪造
type Store struct {
	tokens *auth.JWTer
	secure bool
}

func New(tokens *auth.JWTer, secure bool) *Store {
	return &Store{tokens: tokens, secure: secure}
}

// Add 追加一条消息，之前未展示的消息保留
func (s *Store) Add(c *gin.Context, level Level, text string) {
	msgs := append(s.pending(c), Message{Level: level, Text: text})
	c.Set(ctxKey, msgs)

	cl := claims{RegisteredClaims: s.tokens.Registered(ttl), Messages: msgs}
	tok, err := s.tokens.Sign(cl)
	if err != nil {
		_ = c.Error(err)
		return
	}
	s.setCookie(c, tok, int(ttl.Seconds()))
}

func (s *Store) Success(c *gin.Context, text string) { s.Add(c, Success, text) }

// Pop 取出全部待展示消息并清除 cookie
func (s *Store) Pop(c *gin.Context) []Message {
	msgs := s.pending(c)
	c.Set(ctxKey, []Message{})
	if _, err := c.Cookie(CookieName); err == nil || len(msgs) > 0 {
		s.setCookie(c, "", -1)
	}
	return msgs
}

// pending 本次请求已知的消息；首次调用时从 cookie 解出，篡改或过期的直接丢弃
func (s *Store) pending(c *gin.Context) []Message {
	if v, ok := c.Get(ctxKey); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}
	var msgs []Message
	if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
		var cl claims
		if err := s.tokens.ParseInto(raw, &cl); err == nil {
			msgs = cl.Messages
		}
	}
	c.Set(ctxKey, msgs)
	return msgs
}

func (s *Store) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", s.secure, true)
}

const storeKey = "flash.store"

// Middleware 把 Store 放进上下文，渲染页面时由 From 取出
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storeKey, s)
		c.Next()
	}
}

func From(c *gin.Context) *Store {
	if v, ok := c.Get(storeKey); ok {
		if s, ok := v.(*Store); ok {
			return s
		}
	}
	return nil
}
