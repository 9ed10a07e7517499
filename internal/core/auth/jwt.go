package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTer 负责 cookie 值的签名与校验（会话令牌、flash 消息）
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration // 会话令牌有效期
}

// Registered 生成带签发方与过期时间的标准声明
func (j *JWTer) Registered(ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    j.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// Issue 会话令牌：jti = 会话 id，sub = 用户 id
func (j *JWTer) Issue(sid, uid string) (string, error) {
	claims := j.Registered(j.TTL)
	claims.ID = sid
	claims.Subject = uid
	return j.Sign(claims)
}

func (j *JWTer) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	var c jwt.RegisteredClaims
	if err := j.ParseInto(tokenStr, &c); err != nil {
		return nil, err
	}
	if c.ID == "" || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

func (j *JWTer) ParseInto(tokenStr string, claims jwt.Claims) error {
	t, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(5*time.Second))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return ErrInvalidToken
	}
	return nil
}
