package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/session"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
)

const employeeTimeLayout = "2006-01-02 15:04:05"

type EmployeeHandler struct {
	BaseHandler
	employeeService services.EmployeeService
	sessions        *session.Manager
}

func NewEmployeeHandler(employeeService services.EmployeeService, sessions *session.Manager, logger utils.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     NewBaseHandler(logger),
		employeeService: employeeService,
		sessions:        sessions,
	}
}

// employeeView is the public shape of an employee row.
type employeeView struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Phone     *string `json:"phone"`
	CreatedAt *string `json:"created_at"`
}

func newEmployeeView(e *models.Employee) *employeeView {
	view := &employeeView{
		ID:    e.ID,
		Email: e.Email,
		Name:  e.Name,
		Role:  e.Role,
		Phone: e.Phone,
	}
	if !e.CreatedAt.IsZero() {
		createdAt := e.CreatedAt.Format(employeeTimeLayout)
		view.CreatedAt = &createdAt
	}
	return view
}

// Login verifies the credentials and stores the employee in the session.
func (h *EmployeeHandler) Login(c *gin.Context) {
	var req services.EmployeeLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sess := session.Get(c)
	if err := h.sessions.Regenerate(c, sess); err != nil {
		h.handleServiceError(c, err)
		return
	}
	sess.Data.EmployeeID = employee.ID
	sess.Data.EmployeeName = derefString(employee.Name)
	sess.Data.EmployeeRole = derefString(employee.Role)
	if err := h.sessions.Save(c, sess); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "login successful",
		"employee_id": employee.ID,
		"name":        employee.Name,
		"role":        employee.Role,
	})
}

// Logout drops the employee identity. It succeeds with or without a session.
func (h *EmployeeHandler) Logout(c *gin.Context) {
	sess := session.Get(c)
	sess.Data.ClearEmployee()
	if err := h.sessions.Save(c, sess); err != nil {
		h.LogError(c, err, "Failed to clear employee session")
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the logged-in employee, or null. A session pointing at a
// deleted employee is cleared.
func (h *EmployeeHandler) Me(c *gin.Context) {
	sess := session.Get(c)
	if sess.Data.EmployeeID == 0 {
		c.JSON(http.StatusOK, gin.H{"employee": nil})
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), sess.Data.EmployeeID)
	if err != nil {
		if !errors.Is(err, services.ErrEmployeeNotFound) {
			h.handleServiceError(c, err)
			return
		}
		sess.Data.ClearEmployee()
		if err := h.sessions.Save(c, sess); err != nil {
			h.LogError(c, err, "Failed to clear stale employee session")
		}
		c.JSON(http.StatusOK, gin.H{"employee": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": newEmployeeView(employee)})
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
