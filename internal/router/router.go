package router

import (
	"database/sql"

	"payroll_backend/internal/config"
	"payroll_backend/internal/handlers"
	"payroll_backend/internal/middleware"
	"payroll_backend/internal/realtime"
	"payroll_backend/internal/repositories"
	"payroll_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, hub *realtime.Hub) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db, cfg.JWTSecret, cfg.JWTExpiration, cfg.AllowAnonymous)
	employeeService := services.NewEmployeeService(employeeRepo, db, hub)
	attendanceService := services.NewAttendanceService(attendanceRepo, employeeRepo, hub)
	loanService := services.NewLoanService(loanRepo, employeeRepo, db, hub)
	reportService := services.NewReportService(employeeRepo, attendanceRepo, loanRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, hub)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, hub)
	loanHandler := handlers.NewLoanHandler(loanService, hub)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes: no token required.
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Everything else requires a valid access token.
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupEmployeeRoutes(authenticated, employeeHandler, loanHandler)
		SetupLoanRoutes(authenticated, loanHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
