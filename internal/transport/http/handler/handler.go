package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"employee-directory/internal/domain"
	mdw "employee-directory/internal/transport/http/middleware"
	resp "employee-directory/internal/transport/http/response"
)

const (
	PathLogin     = "/accounts/login"
	PathLogout    = "/accounts/logout"
	PathEmployees = "/employees"
)

// fail 未找到 → 404，其余记日志后 500
func fail(c *gin.Context, l *zap.Logger, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		resp.Error(c, http.StatusNotFound, "")
		return
	}
	_ = c.Error(err)
	l.Error("request failed",
		zap.String("rid", c.GetString(mdw.KeyRequestID)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	resp.Error(c, http.StatusInternalServerError, "")
}

// bindFailed 请求体读取失败；超限的交给 MaxBodyBytes 回 413
func bindFailed(c *gin.Context, err error) {
	_ = c.Error(err)
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return
	}
	resp.Error(c, http.StatusBadRequest, "")
}

// parsePage 缺省、非数字或小于 1 都按第 1 页
func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
