package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"employee-directory/internal/feature/validation"
)

func TestLoginForm_Clean(t *testing.T) {
	f := &LoginForm{Username: "  tester ", Password: " pw "}
	assert.True(t, f.Clean().Empty())
	assert.Equal(t, "tester", f.Username)
	assert.Equal(t, " pw ", f.Password)

	f = &LoginForm{}
	errs := f.Clean()
	assert.Equal(t, validation.MsgRequired, errs.First("username"))
	assert.Equal(t, validation.MsgRequired, errs.First("password"))
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", "/employees"},
		{"/employees/add", "/employees/add"},
		{"/employees?page=2", "/employees?page=2"},
		{"https://evil.example.com", "/employees"},
		{"//evil.example.com", "/employees"},
		{`/\evil.example.com`, "/employees"},
		{"employees", "/employees"},
		{"/\t/evil.example.com", "/employees"},
		{"/\n/evil.example.com", "/employees"},
		{"/\r/evil.example.com", "/employees"},
		{"/\x7f/evil.example.com", "/employees"},
		{"/employees/%2F%2Fevil", "/employees/%2F%2Fevil"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeNext(tt.next, "/employees"), tt.next)
	}
}
