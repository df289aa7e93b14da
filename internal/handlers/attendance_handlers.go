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

// AttendanceHandler holds the attendance service and the realtime hub.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
	hub               *realtime.Hub
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService, hub *realtime.Hub) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as, hub: hub}
}

func attendanceWindow(c *gin.Context) (string, string, bool) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "start and end query parameters are required.", "missing date window"))
		return "", "", false
	}
	return start, end, true
}

func respondAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAttendanceDateFormat), errors.Is(err, services.ErrAttendanceDateRange):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrBatchTooLarge):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Too many attendance changes in one save: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown employee in attendance grid.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Attendance operation failed.", "Internal error"))
	}
}

// GetGrid handles fetching the attendance grid for a visible date window.
func (h *AttendanceHandler) GetGrid(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	start, end, ok := attendanceWindow(c)
	if !ok {
		return
	}

	grid, err := h.attendanceService.GetGrid(ownerID, start, end)
	if err != nil {
		utils.LogError(err, "GetGrid: Error from attendanceService.GetGrid")
		respondAttendanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grid})
}

// StreamGrid is the live subscription over the attendance grid for a date
// window. The subscription is owner-scoped; the window filter is applied to
// each snapshot.
func (h *AttendanceHandler) StreamGrid(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}
	start, end, ok := attendanceWindow(c)
	if !ok {
		return
	}

	events, cancel := h.hub.Subscribe(realtime.TopicAttendance, ownerID)
	defer cancel()

	sendSnapshot := func() bool {
		grid, err := h.attendanceService.GetGrid(ownerID, start, end)
		if err != nil {
			utils.LogError(err, "StreamGrid: snapshot query failed")
			return false
		}
		c.SSEvent("attendance", grid)
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

// SaveGrid handles the explicit save action: the posted grid is written
// back as one atomic batch, or not at all. On failure the client's local
// toggles stay as they are and the save can simply be re-attempted.
func (h *AttendanceHandler) SaveGrid(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	var req services.SaveGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SaveGrid: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	operations, err := h.attendanceService.SaveGrid(ownerID, req)
	if err != nil {
		utils.LogError(err, "SaveGrid: Error from attendanceService.SaveGrid")
		respondAttendanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance saved successfully", "operations": operations})
}
