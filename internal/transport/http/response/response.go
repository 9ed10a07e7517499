// Package response HTML 页面与错误页的统一出口
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-directory/internal/core/session"
	"employee-directory/internal/transport/http/flash"
)

const TplError = "error.html"

// Page 渲染页面；自动带上当前用户名和待展示的提示（展示后即清除）
func Page(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	withUser(c, data)
	if f := flash.From(c); f != nil {
		data["Notices"] = f.Pop(c)
	}
	c.HTML(code, name, data)
}

// Error 渲染错误页；提示消息留给下一个正常页面
func Error(c *gin.Context, code int, msg string) {
	data := gin.H{"Title": http.StatusText(code), "Code": code, "Message": Msg(code, msg)}
	withUser(c, data)
	c.HTML(code, TplError, data)
}

// Abort 中间件里终止处理链并输出错误页
func Abort(c *gin.Context, code int, msg string) {
	c.Abort()
	Error(c, code, msg)
}

// Redirect 表单提交成功后统一用 302
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func withUser(c *gin.Context, data gin.H) {
	if sess, ok := session.Current(c); ok {
		data["User"] = sess.Username
	}
}
