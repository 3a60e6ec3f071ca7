package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/database"
	"github.com/stemsi/teachpay-backend/internal/logger"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
	"github.com/stemsi/teachpay-backend/internal/worker"
)

var degrees = []model.CreateDegreeRequest{
	{FullName: "Cử nhân", ShortName: "CN"},
	{FullName: "Thạc sĩ", ShortName: "ThS"},
	{FullName: "Tiến sĩ", ShortName: "TS"},
	{FullName: "Phó giáo sư", ShortName: "PGS"},
	{FullName: "Giáo sư", ShortName: "GS"},
}

var departments = []model.CreateDepartmentRequest{
	{FullName: "Khoa Công nghệ thông tin", ShortName: "CNTT"},
	{FullName: "Khoa Toán học", ShortName: "Toán"},
	{FullName: "Khoa Kinh tế", ShortName: "KT"},
}

func main() {
	var year string
	var rate float64
	flag.StringVar(&year, "year", "", "Academic year to configure (default: current)")
	flag.Float64Var(&rate, "rate", 100000, "Hourly rate in VND")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if year == "" {
		year = worker.CurrentAcademicYear(time.Now())
	}
	if !validator.ValidAcademicYear(year) {
		log.Fatal().Str("year", year).Msg("year must look like 2024-2025")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	degreeRepo := repository.NewDegreeRepository(pool)
	referenceService := service.NewReferenceService(degreeRepo, repository.NewDepartmentRepository(pool), log)
	semesterService := service.NewSemesterService(repository.NewSemesterRepository(pool), log)
	coefficientService := service.NewCoefficientService(
		repository.NewHourlyRateRepository(pool),
		repository.NewTeacherCoefficientRepository(pool),
		repository.NewClassCoefficientRepository(pool),
		degreeRepo,
		log,
	)

	fmt.Printf("=== Seeding reference data for %s ===\n", year)

	for _, req := range degrees {
		_, err := referenceService.CreateDegree(ctx, req)
		report("degree "+req.FullName, err)
	}
	for _, req := range departments {
		_, err := referenceService.CreateDepartment(ctx, req)
		report("department "+req.FullName, err)
	}

	start, _ := strconv.Atoi(strings.SplitN(year, "-", 2)[0])
	terms := []model.CreateSemesterRequest{
		{TermNumber: 1, AcademicYear: year,
			StartDate: fmt.Sprintf("%d-09-01", start), EndDate: fmt.Sprintf("%d-01-15", start+1)},
		{TermNumber: 2, AcademicYear: year,
			StartDate: fmt.Sprintf("%d-02-01", start+1), EndDate: fmt.Sprintf("%d-06-15", start+1)},
		{TermNumber: 3, IsSupplementary: true, AcademicYear: year,
			StartDate: fmt.Sprintf("%d-07-01", start+1), EndDate: fmt.Sprintf("%d-08-15", start+1)},
	}
	for _, req := range terms {
		_, err := semesterService.Create(ctx, req)
		report(fmt.Sprintf("semester %d", req.TermNumber), err)
	}

	_, err = coefficientService.CreateHourlyRate(ctx, model.CreateHourlyRateRequest{AcademicYear: year, RatePerHour: rate})
	report("hourly rate", err)

	_, err = coefficientService.CreateClassCoefficient(ctx, model.CreateClassCoefficientRequest{
		AcademicYear:         year,
		StandardStudentRange: string(payroll.DefaultRange),
	})
	report("class coefficient", err)

	all, err := referenceService.ListDegrees(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list degrees")
	}
	items := make([]model.BatchTeacherCoefficientItem, 0, len(all))
	for _, d := range all {
		v, _ := service.SuggestedCoefficient(d.FullName).Float64()
		items = append(items, model.BatchTeacherCoefficientItem{DegreeID: d.ID, Coefficient: v})
	}
	if len(items) > 0 {
		_, err = coefficientService.BatchUpsertTeacherCoefficients(ctx, model.BatchTeacherCoefficientRequest{
			AcademicYear: year,
			Items:        items,
		})
		report(fmt.Sprintf("%d teacher coefficients", len(items)), err)
	}

	fmt.Println("Done.")
}

func report(what string, err error) {
	switch {
	case err == nil:
		fmt.Printf("  created %s\n", what)
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrAlreadyConfigured):
		fmt.Printf("  skipped %s (exists)\n", what)
	default:
		fmt.Printf("  FAILED %s: %v\n", what, err)
	}
}
