package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/staffly/hr-backend-go/internal/config"
	appHTTP "github.com/staffly/hr-backend-go/internal/handler/http"
	"github.com/staffly/hr-backend-go/internal/pkg/cron"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
	"github.com/staffly/hr-backend-go/internal/pkg/jwt"
	"github.com/staffly/hr-backend-go/internal/pkg/payslip"
	"github.com/staffly/hr-backend-go/internal/pkg/sse"
	"github.com/staffly/hr-backend-go/internal/pkg/storage"
	"github.com/staffly/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffly/hr-backend-go/internal/service/attendance"
	employeeService "github.com/staffly/hr-backend-go/internal/service/employee"
	leaveService "github.com/staffly/hr-backend-go/internal/service/leave"
	notificationService "github.com/staffly/hr-backend-go/internal/service/notification"
	payrollService "github.com/staffly/hr-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	companyTimingRepo := postgresql.NewCompanyTimingRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notificationSvc.Stop()

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, attendanceRepo, notificationSvc, db)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, companyTimingRepo, employeeRepo, leaveRequestRepo, notificationSvc)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		leaveRequestRepo,
		notificationSvc,
		fileStorage,
		payslip.CompanyInfo{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
		},
		jwtService,
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewNotificationHandler(notificationSvc, jwtService),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
