package main

import (
	"fmt"
	"net/http"

	"github.com/facilops/payroll-backend-go/internal/config"
	appHTTP "github.com/facilops/payroll-backend-go/internal/handler/http"
	"github.com/facilops/payroll-backend-go/internal/pkg/database"
	"github.com/facilops/payroll-backend-go/internal/pkg/jwt"
	"github.com/facilops/payroll-backend-go/internal/repository/postgresql"
	assignmentService "github.com/facilops/payroll-backend-go/internal/service/assignment"
	attendanceService "github.com/facilops/payroll-backend-go/internal/service/attendance"
	payrollService "github.com/facilops/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	installmentRepo := postgresql.NewInstallmentRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	payrollSvc := payrollService.NewPayrollService(
		txManager,
		payrollRepo,
		installmentRepo,
		employeeRepo,
		assignmentRepo,
		attendanceRepo,
	)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, payrollSvc)
	assignmentSvc := assignmentService.NewAssignmentService(assignmentRepo, payrollSvc)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	assignmentHandler := appHTTP.NewAssignmentHandler(assignmentSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		payrollHandler,
		attendanceHandler,
		assignmentHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
