package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/database"
	"github.com/stemsi/teachpay-backend/internal/handler"
	"github.com/stemsi/teachpay-backend/internal/logger"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/router"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
	"github.com/stemsi/teachpay-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("coefficient_policy", cfg.TeacherCoefficientPolicy).
		Msg("Starting TeachPay Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	degreeRepo := repository.NewDegreeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	courseClassRepo := repository.NewCourseClassRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	rateRepo := repository.NewHourlyRateRepository(pool)
	teacherCoefRepo := repository.NewTeacherCoefficientRepository(pool)
	classCoefRepo := repository.NewClassCoefficientRepository(pool)
	statsRepo := repository.NewStatisticsRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)

	// ─── Payroll Engine ────────────────────────────────────────────────
	engine := payroll.NewEngine(payrollRepo, payroll.Options{
		Policy:      payroll.ParsePolicy(cfg.TeacherCoefficientPolicy),
		Concurrency: cfg.ReportConcurrency,
	}, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo, log)
	userService := service.NewUserService(userRepo, authService, log)
	referenceService := service.NewReferenceService(degreeRepo, departmentRepo, log)
	teacherService := service.NewTeacherService(teacherRepo, authService, cfg, log)
	subjectService := service.NewSubjectService(subjectRepo, log)
	semesterService := service.NewSemesterService(semesterRepo, log)
	courseClassService := service.NewCourseClassService(courseClassRepo, semesterRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseClassRepo, teacherRepo, log)
	coefficientService := service.NewCoefficientService(rateRepo, teacherCoefRepo, classCoefRepo, degreeRepo, log)
	reportService := service.NewReportService(engine, semesterRepo, rateRepo, classCoefRepo, teacherCoefRepo, degreeRepo, log)
	exportService := service.NewExportService(reportService, rdb, cfg, log)
	statsService := service.NewStatisticsService(statsRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Reference:   handler.NewReferenceHandler(referenceService),
		Teacher:     handler.NewTeacherHandler(teacherService, assignmentService),
		Subject:     handler.NewSubjectHandler(subjectService),
		Semester:    handler.NewSemesterHandler(semesterService),
		CourseClass: handler.NewCourseClassHandler(courseClassService),
		Assignment:  handler.NewAssignmentHandler(assignmentService),
		Coefficient: handler.NewCoefficientHandler(coefficientService),
		Payroll:     handler.NewPayrollHandler(reportService),
		Report:      handler.NewReportHandler(reportService, exportService),
		Statistics:  handler.NewStatisticsHandler(statsService),
		WS:          handler.NewWSHandler(exportService, log, cfg.AllowedOrigins),
		System:      handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	exportWorker := worker.NewExportWorker(exportService, rdb, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		exportWorker.Start(workerCtx)
	}()

	if cfg.ConfigAuditSchedule != "" {
		auditWorker := worker.NewConfigAuditWorker(reportService, rdb, cfg, log)
		workers.Add(1)
		go func() {
			defer workers.Done()
			auditWorker.Start(workerCtx)
		}()
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the running job to finish.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog and decimal global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	decimal.MarshalJSONWithoutQuotes = true
}
