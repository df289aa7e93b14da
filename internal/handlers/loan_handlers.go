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

// LoanHandler holds the loan service and the realtime hub.
type LoanHandler struct {
	loanService services.LoanService
	hub         *realtime.Hub
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(ls services.LoanService, hub *realtime.Hub) *LoanHandler {
	return &LoanHandler{loanService: ls, hub: hub}
}

// GetLoanHistory handles fetching one employee's loan ledger, newest first,
// with the running total over the loaded history.
func (h *LoanHandler) GetLoanHistory(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")

	history, err := h.loanService.GetLoanHistory(ownerID, employeeID)
	if err != nil {
		utils.LogError(err, "GetLoanHistory: Error from loanService.GetLoanHistory for employee "+employeeID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch loan history.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, history)
}

// StreamLoanHistory is the live subscription over one employee's ledger.
func (h *LoanHandler) StreamLoanHistory(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")

	events, cancel := h.hub.Subscribe(realtime.TopicLoans, ownerID)
	defer cancel()

	sendSnapshot := func() bool {
		history, err := h.loanService.GetLoanHistory(ownerID, employeeID)
		if err != nil {
			utils.LogError(err, "StreamLoanHistory: snapshot query failed")
			return false
		}
		c.SSEvent("loans", history)
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

// AddLoan handles recording a new cash advance.
func (h *LoanHandler) AddLoan(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	var req services.AddLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AddLoan: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	loan, err := h.loanService.AddLoan(ownerID, req)
	if err != nil {
		utils.LogError(err, "AddLoan: Error from loanService.AddLoan")
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Employee for loan not found.", err.Error()))
		} else if errors.Is(err, services.ErrLoanDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record loan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// DeleteLoan handles deleting a single loan entry.
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	loanID := c.Param("id")

	err := h.loanService.DeleteLoan(ownerID, loanID)
	if err != nil {
		utils.LogError(err, "DeleteLoan: Error from loanService.DeleteLoan for ID "+loanID)
		if errors.Is(err, services.ErrLoanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Loan not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete loan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted successfully"})
}
