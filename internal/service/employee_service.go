package service

import (
	"context"
	"errors"
	"math"

	"employee-directory/internal/domain"
	"employee-directory/internal/feature/employee"
	"employee-directory/internal/feature/validation"
	"employee-directory/pkg/utils"
)

const PageSize = 10

// Page 一页员工及分页导航信息
type Page struct {
	Items    []domain.Employee
	Number   int
	NumPages int
	Total    int64
	HasPrev  bool
	HasNext  bool
}

// PrevNumber 越界页的"上一页"回到最后一页
func (p *Page) PrevNumber() int { return min(p.Number-1, p.NumPages) }
func (p *Page) NextNumber() int { return p.Number + 1 }

type EmployeeService struct {
	repo     domain.EmployeeRepository
	pageSize int
}

func NewEmployeeService(r domain.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: r, pageSize: PageSize}
}

// List 页码从 1 开始；超出最后一页得到空页而不是错误
func (s *EmployeeService) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.repo.List(ctx, s.offset(page), s.pageSize)
	if err != nil {
		return nil, err
	}
	numPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if numPages < 1 {
		numPages = 1
	}
	return &Page{
		Items:    items,
		Number:   page,
		NumPages: numPages,
		Total:    total,
		HasPrev:  page > 1,
		HasNext:  page < numPages,
	}, nil
}

// offset 页码过大时饱和到 MaxInt，避免乘法溢出成负数
func (s *EmployeeService) offset(page int) int {
	if page-1 > math.MaxInt/s.pageSize {
		return math.MaxInt
	}
	return (page - 1) * s.pageSize
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 字段错误非空时未写库；error 只表示存储故障
func (s *EmployeeService) Create(ctx context.Context, f *employee.Form) (*domain.Employee, validation.FieldErrors, error) {
	e := &domain.Employee{}
	errs := f.Clean(e)
	if !errs.Empty() {
		return nil, errs, nil
	}
	if errs, err := s.checkEmail(ctx, e.Email, ""); err != nil || !errs.Empty() {
		return nil, errs, err
	}
	e.ID = utils.NewID()
	if err := s.repo.Create(ctx, e); err != nil {
		errs, err := duplicateOr(err)
		return nil, errs, err
	}
	return e, validation.FieldErrors{}, nil
}

// Update 整体替换可编辑字段；唯一性检查排除自身
func (s *EmployeeService) Update(ctx context.Context, id string, f *employee.Form) (*domain.Employee, validation.FieldErrors, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	next := *cur
	errs := f.Clean(&next)
	if !errs.Empty() {
		return cur, errs, nil
	}
	if errs, err := s.checkEmail(ctx, next.Email, id); err != nil || !errs.Empty() {
		return cur, errs, err
	}
	if err := s.repo.Update(ctx, &next); err != nil {
		errs, err := duplicateOr(err)
		return cur, errs, err
	}
	return &next, validation.FieldErrors{}, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *EmployeeService) checkEmail(ctx context.Context, email, excludeID string) (validation.FieldErrors, error) {
	errs := validation.FieldErrors{}
	taken, err := s.repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		errs.Add("email", employee.MsgDuplicateEmail)
	}
	return errs, nil
}

// duplicateOr 写入时撞上唯一索引（并发绕过了预检查）按同样的字段错误处理
func duplicateOr(err error) (validation.FieldErrors, error) {
	if errors.Is(err, domain.ErrDuplicateEmail) {
		errs := validation.FieldErrors{}
		errs.Add("email", employee.MsgDuplicateEmail)
		return errs, nil
	}
	return nil, err
}
