package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-directory/internal/core/database/dbtest"
	"employee-directory/internal/domain"
	"employee-directory/internal/feature/employee"
	"employee-directory/internal/repo"
)

func newEmployeeService(t *testing.T) *EmployeeService {
	return NewEmployeeService(repo.NewEmployeeRepo(dbtest.New(t)))
}

func form(first, last, email string) *employee.Form {
	return &employee.Form{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Department: "Engineering",
		Position:   "Developer",
		DateJoined: "2024-01-01",
		Salary:     "75000.50",
		IsActive:   "on",
	}
}

func TestEmployeeService_CreateNormalizesEmail(t *testing.T) {
	s := newEmployeeService(t)
	ctx := context.Background()

	e, errs, err := s.Create(ctx, form("John", "Doe", "  John.Doe@Example.com "))
	require.NoError(t, err)
	require.True(t, errs.Empty(), errs)
	assert.NotEmpty(t, e.ID)

	page, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "john.doe@example.com", page.Items[0].Email)
	assert.EqualValues(t, 1, page.Total)
}

func TestEmployeeService_CreateRejectsInvalidAndDuplicate(t *testing.T) {
	s := newEmployeeService(t)
	ctx := context.Background()

	_, errs, err := s.Create(ctx, form("John", "Doe", "not-an-email"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Enter a valid email."}, errs["email"])

	_, errs, err = s.Create(ctx, form("John", "Doe", "john@example.com"))
	require.NoError(t, err)
	require.True(t, errs.Empty())

	_, errs, err = s.Create(ctx, form("Other", "Person", " JOHN@example.com"))
	require.NoError(t, err)
	assert.Equal(t, []string{employee.MsgDuplicateEmail}, errs["email"])

	page, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestEmployeeService_Update(t *testing.T) {
	s := newEmployeeService(t)
	ctx := context.Background()

	a, _, err := s.Create(ctx, form("Ann", "Alpha", "ann@example.com"))
	require.NoError(t, err)
	_, _, err = s.Create(ctx, form("Bob", "Beta", "bob@example.com"))
	require.NoError(t, err)

	// 保留自己的邮箱不算重复
	f := employee.FromEmployee(a)
	_, errs, err := s.Update(ctx, a.ID, f)
	require.NoError(t, err)
	assert.True(t, errs.Empty(), errs)

	f = employee.FromEmployee(a)
	f.Email = "bob@example.com"
	_, errs, err = s.Update(ctx, a.ID, f)
	require.NoError(t, err)
	assert.Equal(t, []string{employee.MsgDuplicateEmail}, errs["email"])

	f = employee.FromEmployee(a)
	f.Email = "ann.new@example.com"
	updated, errs, err := s.Update(ctx, a.ID, f)
	require.NoError(t, err)
	require.True(t, errs.Empty(), errs)
	assert.Equal(t, a.ID, updated.ID)

	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann.new@example.com", got.Email)
	assert.Equal(t, a.FirstName, got.FirstName)
	assert.Equal(t, a.Department, got.Department)
	assert.True(t, a.Salary.Equal(got.Salary))

	f.Email = "bad"
	_, errs, err = s.Update(ctx, a.ID, f)
	require.NoError(t, err)
	assert.True(t, errs.Has("email"))
	got, err = s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann.new@example.com", got.Email, "failed update leaves the record unchanged")

	_, _, err = s.Update(ctx, "missing", form("X", "Y", "x@example.com"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeService_Delete(t *testing.T) {
	s := newEmployeeService(t)
	ctx := context.Background()

	e, _, err := s.Create(ctx, form("Del", "Me", "del@example.com"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, e.ID))

	_, err = s.Get(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, e.ID), domain.ErrNotFound)
}

func TestEmployeeService_ListPagination(t *testing.T) {
	s := newEmployeeService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, errs, err := s.Create(ctx, form(fmt.Sprintf("F%02d", i), fmt.Sprintf("L%02d", 14-i), fmt.Sprintf("u%d@example.com", i)))
		require.NoError(t, err)
		require.True(t, errs.Empty(), errs)
	}

	p1, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, p1.Items, 10)
	assert.Equal(t, 2, p1.NumPages)
	assert.False(t, p1.HasPrev)
	assert.True(t, p1.HasNext)
	assert.Equal(t, "L00", p1.Items[0].LastName)

	p2, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, p2.Items, 5)
	assert.True(t, p2.HasPrev)
	assert.False(t, p2.HasNext)
	assert.Equal(t, "L14", p2.Items[4].LastName)

	over, err := s.List(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, over.Items)
	assert.Equal(t, 2, over.PrevNumber())

	zero, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, zero.Number)

	// 偏移量乘法不能溢出回到第一页
	for _, n := range []int{math.MaxInt/PageSize + 2, math.MaxInt} {
		huge, err := s.List(ctx, n)
		require.NoError(t, err)
		assert.Empty(t, huge.Items, n)
		assert.Equal(t, n, huge.Number)
		assert.False(t, huge.HasNext)
		assert.Equal(t, 2, huge.PrevNumber())
	}
}

func TestEmployeeService_EmptyList(t *testing.T) {
	p, err := newEmployeeService(t).List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.NumPages)
	assert.False(t, p.HasNext)
}

// racingRepo 预检查通过但写入时撞上唯一索引
type racingRepo struct {
	domain.EmployeeRepository
	createErr error
}

func (racingRepo) EmailTaken(context.Context, string, string) (bool, error) { return false, nil }
func (r racingRepo) Create(context.Context, *domain.Employee) error        { return r.createErr }

func TestEmployeeService_CreateConstraintRace(t *testing.T) {
	s := NewEmployeeService(racingRepo{createErr: domain.ErrDuplicateEmail})
	e, errs, err := s.Create(context.Background(), form("A", "B", "a@example.com"))
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.Equal(t, []string{employee.MsgDuplicateEmail}, errs["email"])

	boom := errors.New("boom")
	s = NewEmployeeService(racingRepo{createErr: boom})
	_, _, err = s.Create(context.Background(), form("A", "B", "a@example.com"))
	assert.ErrorIs(t, err, boom)
}
