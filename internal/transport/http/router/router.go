package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"employee-directory/internal/core/auth"
	"employee-directory/internal/core/config"
	"employee-directory/internal/core/server"
	"employee-directory/internal/core/session"
	"employee-directory/internal/repo"
	"employee-directory/internal/service"
	"employee-directory/internal/transport/http/flash"
	"employee-directory/internal/transport/http/handler"
	mdw "employee-directory/internal/transport/http/middleware"
	resp "employee-directory/internal/transport/http/response"
	"employee-directory/internal/transport/http/view"
)

// NewWebEngine 组装全部依赖并挂载路由；会话存储由调用方按配置选择
func NewWebEngine(l *zap.Logger, cfg *config.Config, db *gorm.DB, store session.Store) *gin.Engine {
	r := server.NewRouter(l, server.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		OnPanic: func(c *gin.Context, _ any) {
			resp.Abort(c, http.StatusInternalServerError, "")
		},
	})
	r.SetHTMLTemplate(view.MustLoad())

	lim := cfg.Limits
	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
	)

	// 不经过会话的探活与指标
	r.GET("/health", health(db))
	r.GET("/metrics", mdw.MetricsHandler())
	r.NoRoute(func(c *gin.Context) { resp.Error(c, http.StatusNotFound, "") })

	// 依赖
	tokens := &auth.JWTer{
		Secret: []byte(cfg.Session.Secret),
		Issuer: cfg.Session.Issuer,
		TTL:    time.Duration(cfg.Session.TTLMin) * time.Minute,
	}
	sessions := session.NewManager(store, tokens, session.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})
	flashes := flash.New(tokens, cfg.Session.Secure)

	empH := handler.NewEmployeeHandler(service.NewEmployeeService(repo.NewEmployeeRepo(db)), flashes, l)
	authH := handler.NewAuthHandler(service.NewAuthService(repo.NewUserRepo(db)), sessions, flashes, l)

	web := r.Group("", flashes.Middleware(), mdw.LoadSession(sessions, l))
	web.GET("/", func(c *gin.Context) { resp.Redirect(c, handler.PathEmployees) })
	web.GET(handler.PathLogin, authH.LoginPage)
	web.POST(handler.PathLogin, mdw.RateLimitPerIP(rate.Limit(lim.LoginRPS), lim.LoginBurst), authH.Login)

	// 以下均需登录
	authed := web.Group("", mdw.RequireLogin(handler.PathLogin))
	authed.POST(handler.PathLogout, authH.Logout)

	emp := authed.Group(handler.PathEmployees)
	emp.GET("", empH.List)
	emp.GET("/add", empH.New)
	emp.POST("/add", empH.Create)
	emp.GET("/:id/edit", empH.Edit)
	emp.POST("/:id/edit", empH.Update)
	emp.GET("/:id/delete", empH.ConfirmDelete)
	emp.POST("/:id/delete", empH.Delete)

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
