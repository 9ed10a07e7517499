package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"employee-directory/internal/domain"
)

// 整条替换时可写的列（id / created_at 不在其中）
var employeeEditable = []string{
	"first_name", "last_name", "email", "department", "position",
	"date_joined", "salary", "is_active", "profile_image", "updated_at",
}

type EmployeeRepo struct{ db *gorm.DB }

func NewEmployeeRepo(db *gorm.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

var _ domain.EmployeeRepository = (*EmployeeRepo)(nil)

func (r *EmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

func (r *EmployeeRepo) List(ctx context.Context, offset, limit int) ([]domain.Employee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	items := make([]domain.Employee, 0, limit)
	if offset >= int(total) {
		return items, total, nil
	}
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return items, total, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	res := r.db.WithContext(ctx).Model(e).Select(employeeEditable).Updates(e)
	if res.Error != nil {
		if isDupKey(res.Error) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update employee: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL 只统计实际变化的行，值未变时 RowsAffected 也是 0
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("id = ?", e.ID).Count(&n).Error; err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Employee{})
	if res.Error != nil {
		return fmt.Errorf("delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
