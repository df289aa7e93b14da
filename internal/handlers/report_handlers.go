package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"payroll_backend/internal/models"
	"payroll_backend/internal/services"
	"payroll_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const maskedAmount = "****"

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) generate(c *gin.Context) (*models.PayrollReport, bool) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return nil, false
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "start_date and end_date query parameters are required.", "missing date range"))
		return nil, false
	}

	report, err := h.reportService.GeneratePayrollReport(ownerID, startDate, endDate)
	if err != nil {
		utils.LogError(err, "GeneratePayrollReport: Error from reportService")
		if errors.Is(err, services.ErrReportDateFormat) || errors.Is(err, services.ErrReportDateRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			// Any read failure aborts the whole report: one error, no
			// partial result.
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate report.", "Internal error"))
		}
		return nil, false
	}
	return report, true
}

// GetPayrollReport handles payroll report generation over a date range.
func (h *ReportHandler) GetPayrollReport(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportPayrollReport renders the payroll report as a spreadsheet. With
// hide_amounts=true all monetary cells are masked for the privacy print
// view; the underlying computation is unchanged.
func (h *ReportHandler) ExportPayrollReport(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}
	hideAmounts := c.Query("hide_amounts") == "true"

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	amount := func(v float64) interface{} {
		if hideAmounts {
			return maskedAmount
		}
		return v
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Payroll report %s - %s", report.StartDate, report.EndDate))

	headers := []string{"Employee", "Wage", "Days", "Gross Pay", "Loans", "Net Pay"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, head)
	}

	rowIdx := 4
	for _, row := range report.Rows {
		values := []interface{}{row.Name, amount(row.Wage), row.Days, amount(row.GrossPay), amount(row.LoanTotal), amount(row.NetPay)}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
			f.SetCellValue(sheet, cell, v)
		}
		rowIdx++
	}

	rowIdx++
	totals := []interface{}{"Total", "", "", amount(report.Totals.GrossPay), amount(report.Totals.LoanTotal), amount(report.Totals.NetPay)}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
		f.SetCellValue(sheet, cell, v)
	}

	loanSheet := "Loans"
	f.NewSheet(loanSheet)
	loanHeaders := []string{"Date", "Employee", "Amount", "Note"}
	for i, head := range loanHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(loanSheet, cell, head)
	}
	for i, loan := range report.Loans {
		note := ""
		if loan.Note != nil {
			note = *loan.Note
		}
		values := []interface{}{loan.Date, loan.EmployeeName, amount(loan.Amount), note}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(loanSheet, cell, v)
		}
	}

	filename := fmt.Sprintf("payroll_%s_%s.xlsx", report.StartDate, report.EndDate)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.LogError(err, "ExportPayrollReport: failed to write spreadsheet")
	}
}
