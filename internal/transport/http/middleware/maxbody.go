package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "employee-directory/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；handler 读超限时通过 c.Error 上报，这里统一回 413
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var mbe *http.MaxBytesError
			if errors.As(e.Err, &mbe) {
				resp.Abort(c, http.StatusRequestEntityTooLarge, "")
				return
			}
		}
	}
}
