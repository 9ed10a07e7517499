// Package validation 把 go-playground/validator 的结果翻译成表单级的字段错误
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Enter a valid email."
	MsgInvalidDate  = "Enter a valid date."
	MsgInvalidURL   = "Enter a valid URL."
	MsgNumber       = "Enter a number."
)

// NonField 不属于具体字段的错误（如登录失败）
const NonField = "__all__"

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// FieldErrors 字段名（表单里的 name）→ 错误消息
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) { fe[field] = append(fe[field], msg) }

func (fe FieldErrors) Has(field string) bool { return len(fe[field]) > 0 }

func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, msgs := range fe {
		parts = append(parts, k+": "+strings.Join(msgs, " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Validator struct{ v *validator.Validate }

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct 校验 validate 标签；每个字段只保留第一条错误
func (v *Validator) Struct(s any) FieldErrors {
	out := FieldErrors{}
	err := v.v.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(NonField, err.Error())
		return out
	}
	for _, fe := range verrs {
		if out.Has(fe.Field()) {
			continue
		}
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "loose_email":
		return MsgInvalidEmail
	default:
		return "Enter a valid value."
	}
}
