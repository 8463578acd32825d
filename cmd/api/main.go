package main

import (
	"fmt"
	"net/http"

	"github.com/workforcehq/hr-workflow-go/internal/config"
	appHTTP "github.com/workforcehq/hr-workflow-go/internal/handler/http"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/cron"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/database"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/jwt"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/sse"
	"github.com/workforcehq/hr-workflow-go/internal/repository/postgresql"
	notificationService "github.com/workforcehq/hr-workflow-go/internal/service/notification"
	requestService "github.com/workforcehq/hr-workflow-go/internal/service/request"
	timesheetService "github.com/workforcehq/hr-workflow-go/internal/service/timesheet"
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

	requestRepo := postgresql.NewRequestRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifService.Shutdown()

	calculator := timesheetService.NewCalculator(cfg.Workday)
	requestSvc := requestService.NewRequestService(
		txManager,
		requestRepo,
		timesheetRepo,
		employeeRepo,
		notifService,
		calculator,
		cfg.Policy,
	)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("finalize-timesheets", cfg.Policy.FinalizeInterval,
		cron.FinalizeTimesheetsJob(timesheetRepo, cfg.Policy.FinalizeAfterDays))
	scheduler.Start()
	defer scheduler.Stop()

	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, hub)

	router := appHTTP.NewRouter(
		cfg.App,
		jwtService,
		requestHandler,
		timesheetHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
