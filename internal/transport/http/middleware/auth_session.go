package middleware

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"employee-directory/internal/core/session"
	resp "employee-directory/internal/transport/http/response"
)

// LoadSession 有有效会话时放进上下文；不拦截请求
func LoadSession(m *session.Manager, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.Load(c)
		switch {
		case err == nil:
			c.Set(session.ContextKey, sess)
		case !errors.Is(err, session.ErrNotFound):
			// 存储故障按未登录处理，受保护页面会跳去登录
			l.Warn("load session failed", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
		}
		c.Next()
	}
}

// RequireLogin 未登录时 302 到登录页，next 带上原始路径和查询串
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.Current(c); ok {
			c.Next()
			return
		}
		c.Abort()
		q := url.Values{"next": {c.Request.URL.RequestURI()}}
		resp.Redirect(c, loginPath+"?"+q.Encode())
	}
}
