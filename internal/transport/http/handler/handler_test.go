package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"employee-directory/internal/domain"
	"employee-directory/internal/transport/http/view"
)

func init() { gin.SetMode(gin.TestMode) }

func TestParsePage(t *testing.T) {
	cases := map[string]int{"": 1, "1": 1, "2": 2, "abc": 1, "0": 1, "-4": 1, "3.5": 1, "99": 99}
	for raw, want := range cases {
		assert.Equal(t, want, parsePage(raw), "page=%q", raw)
	}
}

func TestFail(t *testing.T) {
	r := gin.New()
	r.SetHTMLTemplate(view.MustLoad())
	r.GET("/missing", func(c *gin.Context) { fail(c, zap.NewNop(), fmt.Errorf("find: %w", domain.ErrNotFound)) })
	r.GET("/broken", func(c *gin.Context) { fail(c, zap.NewNop(), errors.New("db down")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}
