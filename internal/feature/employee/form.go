package employee

import (
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"employee-directory/internal/domain"
	"employee-directory/internal/feature/validation"
)

const (
	MsgDuplicateEmail = "Employee with this Email already exists."

	salaryMaxDigits   = 10
	salaryMaxDecimals = 2
)

var (
	dateLayouts = []string{"2006-01-02", "01/02/2006", "01/02/06"}
	urlSchemes  = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}

	validate = validation.New()
)

// Form 提交的原始值；校验失败时原样回显
type Form struct {
	FirstName    string `form:"first_name" validate:"required,max=100"`
	LastName     string `form:"last_name" validate:"required,max=100"`
	Email        string `form:"email" validate:"required,max=254,loose_email"`
	Department   string `form:"department" validate:"required,max=100"`
	Position     string `form:"position" validate:"required,max=100"`
	DateJoined   string `form:"date_joined" validate:"required"`
	Salary       string `form:"salary" validate:"required"`
	IsActive     string `form:"is_active"`
	ProfileImage string `form:"profile_image" validate:"omitempty,max=200"`
}

// NewForm 新建时的初始表单；is_active 默认勾选
func NewForm() *Form { return &Form{IsActive: "on"} }

func FromEmployee(e *domain.Employee) *Form {
	f := &Form{
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Department:   e.Department,
		Position:     e.Position,
		DateJoined:   time.Time(e.DateJoined).Format("2006-01-02"),
		Salary:       e.Salary.StringFixed(salaryMaxDecimals),
		ProfileImage: e.ProfileImage,
	}
	if e.IsActive {
		f.IsActive = "on"
	}
	return f
}

func (f *Form) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Department = strings.TrimSpace(f.Department)
	f.Position = strings.TrimSpace(f.Position)
	f.DateJoined = strings.TrimSpace(f.DateJoined)
	f.Salary = strings.TrimSpace(f.Salary)
	f.ProfileImage = strings.TrimSpace(f.ProfileImage)
}

// Checked 复选框语义：未提交即 false
func (f *Form) Checked() bool {
	switch strings.ToLower(strings.TrimSpace(f.IsActive)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Clean 规范化并校验；成功时把可编辑字段写入 dst（id 不动）
// 邮箱唯一性需要查库，由调用方在此之后检查
func (f *Form) Clean(dst *domain.Employee) validation.FieldErrors {
	f.normalize()
	errs := validate.Struct(f)

	var joined time.Time
	if !errs.Has("date_joined") {
		t, ok := parseDate(f.DateJoined)
		if ok {
			joined = t
		} else {
			errs.Add("date_joined", validation.MsgInvalidDate)
		}
	}
	var salary decimal.Decimal
	if !errs.Has("salary") {
		d, msg := parseSalary(f.Salary)
		if msg != "" {
			errs.Add("salary", msg)
		} else {
			salary = d
		}
	}
	profile := f.ProfileImage
	if profile != "" && !errs.Has("profile_image") {
		u, ok := parseURL(profile)
		if !ok {
			errs.Add("profile_image", validation.MsgInvalidURL)
		} else {
			profile = u
		}
	}
	if !errs.Empty() {
		return errs
	}

	dst.FirstName = f.FirstName
	dst.LastName = f.LastName
	dst.Email = f.Email
	dst.Department = f.Department
	dst.Position = f.Position
	dst.DateJoined = datatypes.Date(joined)
	dst.Salary = salary
	dst.IsActive = f.Checked()
	dst.ProfileImage = profile
	return errs
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseSalary 按 decimal(10,2) 的位数规则校验，返回空消息表示通过
func parseSalary(s string) (decimal.Decimal, string) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, validation.MsgNumber
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	exp := int(d.Exponent())
	decimals := 0
	if exp >= 0 {
		if d.Coefficient().Sign() != 0 {
			digits += exp
		}
	} else {
		decimals = -exp
		digits = max(digits, decimals)
	}
	whole := digits - decimals

	switch {
	case digits > salaryMaxDigits:
		return decimal.Decimal{}, "Ensure that there are no more than 10 digits in total."
	case decimals > salaryMaxDecimals:
		return decimal.Decimal{}, "Ensure that there are no more than 2 decimal places."
	case whole > salaryMaxDigits-salaryMaxDecimals:
		return decimal.Decimal{}, "Ensure that there are no more than 8 digits before the decimal point."
	}
	return d, ""
}

// parseURL 没写 scheme 时按 http 处理
func parseURL(s string) (string, bool) {
	if strings.ContainsAny(s, " \t\r\n") {
		return "", false
	}
	if !strings.Contains(s, "://") {
		// "mailto:x" 之类带了别的 scheme；"host:8000/x" 只是端口
		if i := strings.IndexAny(s, ":/"); i >= 0 && s[i] == ':' && !isPort(s[i+1:]) {
			return "", false
		}
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil || !urlSchemes[strings.ToLower(u.Scheme)] || u.Hostname() == "" {
		return "", false
	}
	host := u.Hostname()
	if host != "localhost" && !strings.Contains(host, ".") && !strings.Contains(host, ":") {
		return "", false
	}
	return u.String(), true
}

func isPort(rest string) bool {
	port, _, _ := strings.Cut(rest, "/")
	if port == "" {
		return false
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
