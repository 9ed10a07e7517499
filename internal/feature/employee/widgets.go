package employee

import "employee-directory/internal/feature/validation"

const WidgetClass = "with-placeholder"

// Widget 模板渲染一个输入框所需的全部信息
type Widget struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Step        string
	Checked     bool
	Placeholder string // 复选框为空，模板据此不输出 placeholder 属性
	Class       string
	Errors      []string
}

type fieldSpec struct {
	name, label, typ, step string
	value                  func(f *Form) string
}

var fieldSpecs = []fieldSpec{
	{name: "first_name", label: "First name", typ: "text", value: func(f *Form) string { return f.FirstName }},
	{name: "last_name", label: "Last name", typ: "text", value: func(f *Form) string { return f.LastName }},
	{name: "email", label: "Email", typ: "email", value: func(f *Form) string { return f.Email }},
	{name: "department", label: "Department", typ: "text", value: func(f *Form) string { return f.Department }},
	{name: "position", label: "Position", typ: "text", value: func(f *Form) string { return f.Position }},
	{name: "date_joined", label: "Date joined", typ: "date", value: func(f *Form) string { return f.DateJoined }},
	{name: "salary", label: "Salary", typ: "number", step: "0.01", value: func(f *Form) string { return f.Salary }},
	{name: "is_active", label: "Is active", typ: "checkbox", value: func(f *Form) string { return f.IsActive }},
	{name: "profile_image", label: "Profile image", typ: "url", value: func(f *Form) string { return f.ProfileImage }},
}

// Widgets 按固定字段顺序生成控件，附带各字段的错误
func (f *Form) Widgets(errs validation.FieldErrors) []Widget {
	out := make([]Widget, 0, len(fieldSpecs))
	for _, s := range fieldSpecs {
		w := Widget{
			Name:   s.name,
			Label:  s.label,
			Type:   s.typ,
			Step:   s.step,
			Class:  WidgetClass,
			Errors: errs[s.name],
		}
		if s.typ == "checkbox" {
			w.Checked = f.Checked()
		} else {
			w.Value = s.value(f)
			w.Placeholder = s.label
		}
		out = append(out, w)
	}
	return out
}
