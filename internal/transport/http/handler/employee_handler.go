package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"employee-directory/internal/feature/employee"
	"employee-directory/internal/feature/validation"
	"employee-directory/internal/service"
	"employee-directory/internal/transport/http/flash"
	resp "employee-directory/internal/transport/http/response"
)

const (
	tplList    = "employee_list.html"
	tplForm    = "employee_form.html"
	tplConfirm = "employee_confirm_delete.html"

	msgAdded   = "Employee added successfully."
	msgUpdated = "Employee updated successfully."
	msgDeleted = "Employee deleted."
)

type EmployeeHandler struct {
	svc   *service.EmployeeService
	flash *flash.Store
	log   *zap.Logger
}

func NewEmployeeHandler(svc *service.EmployeeService, f *flash.Store, l *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, flash: f, log: l}
}

// List GET /employees?page=N
func (h *EmployeeHandler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), parsePage(c.Query("page")))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Page(c, http.StatusOK, tplList, gin.H{
		"Title":   "Employees",
		"Page":    page,
		"Deleted": c.Query("deleted"),
	})
}

// New GET /employees/add
func (h *EmployeeHandler) New(c *gin.Context) {
	h.renderForm(c, "Add employee", c.Request.URL.Path, employee.NewForm(), nil)
}

// Create POST /employees/add
func (h *EmployeeHandler) Create(c *gin.Context) {
	var f employee.Form
	if err := c.ShouldBind(&f); err != nil {
		bindFailed(c, err)
		return
	}
	e, errs, err := h.svc.Create(c.Request.Context(), &f)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if !errs.Empty() {
		h.renderForm(c, "Add employee", c.Request.URL.Path, &f, errs)
		return
	}
	h.log.Info("employee created", zap.String("id", e.ID), zap.String("email", e.Email))
	h.flash.Success(c, msgAdded)
	resp.Redirect(c, PathEmployees)
}

// Edit GET /employees/:id/edit
func (h *EmployeeHandler) Edit(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	h.renderForm(c, "Edit "+e.FullName(), c.Request.URL.Path, employee.FromEmployee(e), nil)
}

// Update POST /employees/:id/edit
func (h *EmployeeHandler) Update(c *gin.Context) {
	var f employee.Form
	if err := c.ShouldBind(&f); err != nil {
		bindFailed(c, err)
		return
	}
	cur, errs, err := h.svc.Update(c.Request.Context(), c.Param("id"), &f)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if !errs.Empty() {
		h.renderForm(c, "Edit "+cur.FullName(), c.Request.URL.Path, &f, errs)
		return
	}
	h.log.Info("employee updated", zap.String("id", cur.ID))
	h.flash.Success(c, msgUpdated)
	resp.Redirect(c, PathEmployees)
}

// ConfirmDelete GET /employees/:id/delete，只展示不删除
func (h *EmployeeHandler) ConfirmDelete(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Page(c, http.StatusOK, tplConfirm, gin.H{"Title": "Delete employee", "Employee": e})
}

// Delete POST /employees/:id/delete
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	h.log.Info("employee deleted", zap.String("id", id))
	h.flash.Success(c, msgDeleted)
	resp.Redirect(c, PathEmployees+"?deleted=1")
}

func (h *EmployeeHandler) renderForm(c *gin.Context, title, action string, f *employee.Form, errs validation.FieldErrors) {
	resp.Page(c, http.StatusOK, tplForm, gin.H{
		"Title":   title,
		"Action":  action,
		"Widgets": f.Widgets(errs),
		"Errors":  errs,
	})
}
