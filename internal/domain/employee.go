package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Employee struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	FirstName    string          `gorm:"size:100;not null" json:"firstName"`
	LastName     string          `gorm:"size:100;not null" json:"lastName"`
	Email        string          `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Department   string          `gorm:"size:100;not null" json:"department"`
	Position     string          `gorm:"size:100;not null" json:"position"`
	DateJoined   datatypes.Date  `gorm:"not null" json:"dateJoined"`
	Salary       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"salary"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	ProfileImage string          `gorm:"size:200;not null" json:"profileImage"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) FullName() string { return e.FirstName + " " + e.LastName }

// EmployeeRepository 员工存储；所有按 id 的操作找不到时返回 ErrNotFound，
// 唯一索引冲突返回 ErrDuplicateEmail
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]Employee, int64, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
}
