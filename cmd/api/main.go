package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/contactevin2u/AAHRMS-sub003/internal/config"
	appHTTP "github.com/contactevin2u/AAHRMS-sub003/internal/handler/http"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/database"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/jwt"
	"github.com/contactevin2u/AAHRMS-sub003/internal/repository/postgresql"
	attendanceService "github.com/contactevin2u/AAHRMS-sub003/internal/service/attendance"
	claimService "github.com/contactevin2u/AAHRMS-sub003/internal/service/claim"
	employeeService "github.com/contactevin2u/AAHRMS-sub003/internal/service/employee"
	leaveService "github.com/contactevin2u/AAHRMS-sub003/internal/service/leave"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/period"
	payrollService "github.com/contactevin2u/AAHRMS-sub003/internal/service/payroll"
	scheduleService "github.com/contactevin2u/AAHRMS-sub003/internal/service/schedule"
	"github.com/contactevin2u/AAHRMS-sub003/internal/service/statutory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	claimRepo := postgresql.NewClaimRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	tables, err := statutory.Load(cfg.Payroll.TableVersion)
	if err != nil {
		log.Fatal("Failed to load statutory tables: ", err)
	}
	calculator := statutory.NewCalculator(tables)

	loc, err := time.LoadLocation(cfg.Payroll.Timezone)
	if err != nil {
		log.Fatal("Invalid payroll timezone: ", err)
	}

	jwtSvc := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	resolver := period.NewResolver(payrollRepo, loc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, scheduleRepo, leaveRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	claimSvc := claimService.NewClaimService(claimRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		employeeRepo,
		companyRepo,
		claimRepo,
		attendanceSvc,
		leaveSvc,
		resolver,
		calculator,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	claimHandler := appHTTP.NewClaimHandler(claimSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		payrollHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		scheduleHandler,
		claimHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Payroll API listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
