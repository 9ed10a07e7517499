package user

import (
	"net/url"
	"strings"

	"employee-directory/internal/feature/validation"
)

const MsgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

var validate = validation.New()

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// Clean 用户名去空格，密码保持原样
func (f *LoginForm) Clean() validation.FieldErrors {
	f.Username = strings.TrimSpace(f.Username)
	return validate.Struct(f)
}

// SafeNext 只接受站内路径，防止登录后被跳到外站
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	// 浏览器会丢弃 URL 里的制表符和换行，"/\t/evil.com" 会变成 "//evil.com"
	if strings.ContainsFunc(next, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
