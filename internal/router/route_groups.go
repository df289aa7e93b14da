package router

import (
	"payroll_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the authentication routes that issue tokens.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
	group.POST("/guest", authHandler.GuestLogin)
}

// SetupAuthenticatedAuthRoutes sets up the session routes behind the auth middleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/logout", authHandler.Logout)
}

// SetupEmployeeRoutes sets up the employee routes. Loan history lives under
// the employee path because it is always viewed per employee.
func SetupEmployeeRoutes(authenticatedGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler, loanHandler *handlers.LoanHandler) {
	employeeRoutes := authenticatedGroup.Group("/employees")
	{
		employeeRoutes.GET("", employeeHandler.GetEmployees)
		employeeRoutes.GET("/stream", employeeHandler.StreamEmployees)
		employeeRoutes.POST("", employeeHandler.CreateEmployee)
		employeeRoutes.PUT("/:id", employeeHandler.UpdateEmployee)
		employeeRoutes.DELETE("/:id", employeeHandler.DeleteEmployee)
		employeeRoutes.GET("/:id/loans", loanHandler.GetLoanHistory)
		employeeRoutes.GET("/:id/loans/stream", loanHandler.StreamLoanHistory)
	}
}

// SetupLoanRoutes sets up the loan mutation routes.
func SetupLoanRoutes(authenticatedGroup *gin.RouterGroup, loanHandler *handlers.LoanHandler) {
	loanRoutes := authenticatedGroup.Group("/loans")
	{
		loanRoutes.POST("", loanHandler.AddLoan)
		loanRoutes.DELETE("/:id", loanHandler.DeleteLoan)
	}
}

// SetupAttendanceRoutes sets up the attendance grid routes.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance")
	{
		attendanceRoutes.GET("", attendanceHandler.GetGrid)
		attendanceRoutes.GET("/stream", attendanceHandler.StreamGrid)
		attendanceRoutes.POST("/save", attendanceHandler.SaveGrid)
	}
}

// SetupReportRoutes sets up the payroll report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/payroll", reportHandler.GetPayrollReport)
		reportRoutes.GET("/payroll/export", reportHandler.ExportPayrollReport)
	}
}
