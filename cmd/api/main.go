package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taplog/attendance-backend-go/internal/config"
	appHTTP "github.com/taplog/attendance-backend-go/internal/handler/http"
	"github.com/taplog/attendance-backend-go/internal/pkg/database"
	"github.com/taplog/attendance-backend-go/internal/pkg/jwt"
	"github.com/taplog/attendance-backend-go/internal/repository/postgresql"
	authService "github.com/taplog/attendance-backend-go/internal/service/auth"
	employeeService "github.com/taplog/attendance-backend-go/internal/service/employee"
	overrideService "github.com/taplog/attendance-backend-go/internal/service/override"
	reportService "github.com/taplog/attendance-backend-go/internal/service/report"
	scanService "github.com/taplog/attendance-backend-go/internal/service/scan"
	settingsService "github.com/taplog/attendance-backend-go/internal/service/settings"
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
	eventRepo := postgresql.NewEventRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	scanSvc := scanService.NewScanService(db, employeeRepo, eventRepo, settingsRepo, cfg.Scan.BounceWindow)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, eventRepo)
	reportSvc := reportService.NewReportService(eventRepo, employeeRepo, overrideRepo, settingsRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	overrideSvc := overrideService.NewOverrideService(overrideRepo, employeeRepo)

	if err := authSvc.SeedFirstAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		fmt.Println("Error seeding admin user:", err)
		return
	}

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:      JWTService,
		AuthHandler:     appHTTP.NewAuthHandler(authSvc, JWTService),
		ScanHandler:     appHTTP.NewScanHandler(scanSvc),
		EmployeeHandler: appHTTP.NewEmployeeHandler(employeeSvc),
		ReportHandler:   appHTTP.NewReportHandler(reportSvc),
		SettingsHandler: appHTTP.NewSettingsHandler(settingsSvc),
		OverrideHandler: appHTTP.NewOverrideHandler(overrideSvc),
		AllowedOrigins:  cfg.App.AllowedOrigins,
		Env:             cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
