package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"employee-directory/internal/core/session"
	"employee-directory/internal/domain"
	"employee-directory/internal/feature/user"
	"employee-directory/internal/feature/validation"
	"employee-directory/internal/service"
	"employee-directory/internal/transport/http/flash"
	resp "employee-directory/internal/transport/http/response"
)

const (
	tplLogin = "login.html"

	msgLoggedIn  = "Login successful."
	msgLoggedOut = "Logged out."
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	flash    *flash.Store
	log      *zap.Logger
}

func NewAuthHandler(a *service.AuthService, s *session.Manager, f *flash.Store, l *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: a, sessions: s, flash: f, log: l}
}

// LoginPage GET /accounts/login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, &user.LoginForm{Next: c.Query("next")}, validation.FieldErrors{})
}

// Login POST /accounts/login
func (h *AuthHandler) Login(c *gin.Context) {
	var f user.LoginForm
	if err := c.ShouldBind(&f); err != nil {
		bindFailed(c, err)
		return
	}
	if errs := f.Clean(); !errs.Empty() {
		h.render(c, &f, errs)
		return
	}

	u, err := h.auth.Authenticate(c.Request.Context(), f.Username, f.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.log.Info("login rejected", zap.String("username", f.Username), zap.String("ip", c.ClientIP()))
		errs := validation.FieldErrors{}
		errs.Add(validation.NonField, user.MsgInvalidLogin)
		h.render(c, &f, errs)
		return
	}
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if _, err := h.sessions.Start(c, u); err != nil {
		fail(c, h.log, err)
		return
	}
	h.log.Info("login", zap.String("user", u.Username))
	h.flash.Success(c, msgLoggedIn)
	resp.Redirect(c, user.SafeNext(f.Next, PathEmployees))
}

// Logout POST /accounts/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		fail(c, h.log, err)
		return
	}
	h.flash.Success(c, msgLoggedOut)
	resp.Redirect(c, PathLogin)
}

// 回显时不带密码
func (h *AuthHandler) render(c *gin.Context, f *user.LoginForm, errs validation.FieldErrors) {
	f.Password = ""
	resp.Page(c, http.StatusOK, tplLogin, gin.H{"Title": "Log in", "Form": f, "Errors": errs})
}
