// Package view 内嵌的 HTML 模板
package view

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"date": func(d datatypes.Date) string { return time.Time(d).Format("2006-01-02") },
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
}

// Load 解析全部模板；模板名即文件名（如 employee_list.html）
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

func MustLoad() *template.Template {
	return template.Must(Load())
}
