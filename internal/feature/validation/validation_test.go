package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `form:"name" validate:"required,max=5"`
	Email string `form:"email" validate:"required,loose_email"`
	Note  string `form:"note" validate:"omitempty,max=3"`
}

func TestValidEmail(t *testing.T) {
	valid := []string{"john.doe@example.com", "a@b.co", "x+tag@sub.domain.org"}
	invalid := []string{"not-an-email", "bad", "a@b", "a b@example.com", "a@@example.com", "@example.com", "a@example.", ""}
	for _, s := range valid {
		assert.True(t, ValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, ValidEmail(s), s)
	}
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	errs := v.Struct(sample{Name: "ok", Email: "a@b.co"})
	assert.True(t, errs.Empty())

	errs = v.Struct(sample{Name: "", Email: "nope", Note: "toolong"})
	assert.Equal(t, MsgRequired, errs.First("name"))
	assert.Equal(t, MsgInvalidEmail, errs.First("email"))
	assert.Equal(t, "Ensure this value has at most 3 characters (it has 7).", errs.First("note"))

	errs = v.Struct(sample{Name: "Zoë Renée", Email: "a@b.co"})
	assert.Equal(t, "Ensure this value has at most 5 characters (it has 9).", errs.First("name"))
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	assert.True(t, fe.Empty())
	fe.Add("email", "one")
	fe.Add("email", "two")
	assert.True(t, fe.Has("email"))
	assert.False(t, fe.Has("name"))
	assert.Equal(t, "one", fe.First("email"))
	assert.Equal(t, "", fe.First("name"))
	assert.True(t, strings.Contains(fe.Error(), "email: one two"))
}
