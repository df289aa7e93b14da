package handlers

import (
	"errors"
	"io"
	"net/http"

	"payroll_backend/internal/realtime"
	"payroll_backend/internal/services"
	"payroll_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler holds the employee service and the realtime hub.
type EmployeeHandler struct {
	employeeService services.EmployeeService
	hub             *realtime.Hub
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService, hub *realtime.Hub) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es, hub: hub}
}

// GetEmployees handles fetching all employees owned by the current session.
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	var pSearchTerm *string
	if searchTerm := c.Query("search"); searchTerm != "" {
		pSearchTerm = &searchTerm
	}

	employees, err := h.employeeService.GetEmployees(ownerID, pSearchTerm)
	if err != nil {
		utils.LogError(err, "GetEmployees: Error from employeeService.GetEmployees")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employees.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": employees})
}

// StreamEmployees is the live subscription over the employee list: the full
// owner-scoped snapshot is pushed on connect and again after every mutation.
func (h *EmployeeHandler) StreamEmployees(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	events, cancel := h.hub.Subscribe(realtime.TopicEmployees, ownerID)
	defer cancel()

	sendSnapshot := func() bool {
		employees, err := h.employeeService.GetEmployees(ownerID, nil)
		if err != nil {
			utils.LogError(err, "StreamEmployees: snapshot query failed")
			return false
		}
		c.SSEvent("employees", employees)
		return true
	}

	if !sendSnapshot() {
		return
	}
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case _, open := <-events:
			if !open {
				return false
			}
			return sendSnapshot()
		}
	})
}

// CreateEmployee handles the creation of a new employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	var req services.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateEmployee: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(ownerID, req)
	if err != nil {
		utils.LogError(err, "CreateEmployee: Error from employeeService.CreateEmployee")
		if errors.Is(err, services.ErrEmployeeDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee handles editing an employee by id.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")

	var req services.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateEmployee: Failed to bind JSON for ID "+employeeID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(ownerID, employeeID, req)
	if err != nil {
		utils.LogError(err, "UpdateEmployee: Error from employeeService.UpdateEmployee for ID "+employeeID)
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrEmployeeDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles deleting an employee. The delete is unconditional
// and never cascades; attendance and loan history keep their snapshots.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")

	err := h.employeeService.DeleteEmployee(ownerID, employeeID)
	if err != nil {
		utils.LogError(err, "DeleteEmployee: Error from employeeService.DeleteEmployee for ID "+employeeID)
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
