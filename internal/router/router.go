package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/handler"
	"github.com/stemsi/teachpay-backend/internal/middleware"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
)

// academicYearsMaxAge is how long clients may cache the academic year list.
const academicYearsMaxAge = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Reference   *handler.ReferenceHandler
	Teacher     *handler.TeacherHandler
	Subject     *handler.SubjectHandler
	Semester    *handler.SemesterHandler
	CourseClass *handler.CourseClassHandler
	Assignment  *handler.AssignmentHandler
	Coefficient *handler.CoefficientHandler
	Payroll     *handler.PayrollHandler
	Report      *handler.ReportHandler
	Statistics  *handler.StatisticsHandler
	WS          *handler.WSHandler
	System      *handler.SystemHandler
}

func perm(p model.Permission) gin.HandlerFunc {
	return middleware.RequirePermission(string(p))
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background middleware state such as the login rate limiter.
func SetupRouter(
	ctx context.Context,
	verifier middleware.TokenVerifier,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	requireJWT := middleware.RequireJWT(verifier)

	// Rate limiter for the login route (30 requests per minute per IP).
	loginLimiter := middleware.NewRateLimiter(ctx, 30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

		auth.POST("/logout", requireJWT, handlers.Auth.Logout)
		auth.GET("/me", requireJWT, handlers.Auth.Me)
		auth.PUT("/password", requireJWT, handlers.Auth.ChangePassword)
	}

	// ─── 2. WebSocket Group (token in query) ───────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(requireJWT)
	{
		ws.GET("/exports/:job_id", perm(model.PermissionReportsExport), handlers.WS.ExportStatusStream)
	}

	api := router.Group("/api/v1")
	api.Use(requireJWT)

	// ─── 3. Users (Admin) ──────────────────────────────────────────────
	users := api.Group("/users")
	users.Use(perm(model.PermissionUsersManage))
	{
		users.GET("", handlers.User.List)
		users.GET("/roles", handlers.User.Roles)
		users.GET("/:id", handlers.User.Get)
		users.POST("", handlers.User.Create)
		users.PUT("/:id", handlers.User.Update)
		users.DELETE("/:id", handlers.User.Delete)
	}

	read := perm(model.PermissionReferenceRead)

	// ─── 4. Reference Data ─────────────────────────────────────────────
	degrees := api.Group("/degrees")
	{
		degrees.GET("", read, handlers.Reference.ListDegrees)
		degrees.GET("/:id", read, handlers.Reference.GetDegree)
		degrees.POST("", perm(model.PermissionDepartmentsWrite), handlers.Reference.CreateDegree)
		degrees.PUT("/:id", perm(model.PermissionDepartmentsWrite), handlers.Reference.UpdateDegree)
		degrees.DELETE("/:id", perm(model.PermissionDepartmentsWrite), handlers.Reference.DeleteDegree)
	}

	departments := api.Group("/departments")
	{
		departments.GET("", read, handlers.Reference.ListDepartments)
		departments.GET("/:id", read, handlers.Reference.GetDepartment)
		departments.POST("", perm(model.PermissionDepartmentsWrite), handlers.Reference.CreateDepartment)
		departments.PUT("/:id", perm(model.PermissionDepartmentsWrite), handlers.Reference.UpdateDepartment)
		departments.DELETE("/:id", perm(model.PermissionDepartmentsWrite), handlers.Reference.DeleteDepartment)
	}

	teachers := api.Group("/teachers")
	{
		teachers.GET("", read, handlers.Teacher.List)
		teachers.GET("/:id", read, handlers.Teacher.Get)
		teachers.GET("/:id/workload", middleware.RequireTeacherAccess("id"), handlers.Teacher.Workload)
		teachers.POST("", perm(model.PermissionTeachersWrite), handlers.Teacher.Create)
		teachers.PUT("/:id", perm(model.PermissionTeachersWrite), handlers.Teacher.Update)
		teachers.DELETE("/:id", perm(model.PermissionTeachersWrite), handlers.Teacher.Delete)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", read, handlers.Subject.List)
		subjects.GET("/:id", read, handlers.Subject.Get)
		subjects.POST("", perm(model.PermissionSubjectsWrite), handlers.Subject.Create)
		subjects.PUT("/:id", perm(model.PermissionSubjectsWrite), handlers.Subject.Update)
		subjects.DELETE("/:id", perm(model.PermissionSubjectsWrite), handlers.Subject.Delete)
	}

	semesters := api.Group("/semesters")
	{
		semesters.GET("", read, handlers.Semester.List)
		semesters.GET("/:id", read, handlers.Semester.Get)
		semesters.POST("", perm(model.PermissionSemestersWrite), handlers.Semester.Create)
		semesters.PUT("/:id", perm(model.PermissionSemestersWrite), handlers.Semester.Update)
		semesters.DELETE("/:id", perm(model.PermissionSemestersWrite), handlers.Semester.Delete)
	}

	// ─── 5. Teaching Load ──────────────────────────────────────────────
	courseClasses := api.Group("/course-classes")
	{
		courseClasses.GET("", read, handlers.CourseClass.List)
		courseClasses.GET("/:id", read, handlers.CourseClass.Get)
		courseClasses.POST("", perm(model.PermissionCourseClassesWrite), handlers.CourseClass.Create)
		courseClasses.PUT("/:id", perm(model.PermissionCourseClassesWrite), handlers.CourseClass.UpdateStudentCount)
		courseClasses.DELETE("/:id", perm(model.PermissionCourseClassesWrite), handlers.CourseClass.Delete)
	}

	assignments := api.Group("/assignments")
	{
		assignments.GET("", read, handlers.Assignment.List)
		assignments.GET("/:id", read, handlers.Assignment.Get)
		assignments.POST("", perm(model.PermissionAssignmentsWrite), handlers.Assignment.Create)
		assignments.POST("/bulk", perm(model.PermissionAssignmentsWrite), handlers.Assignment.CreateBulk)
		assignments.PUT("/:id", perm(model.PermissionAssignmentsWrite), handlers.Assignment.Update)
		assignments.DELETE("/:id", perm(model.PermissionAssignmentsWrite), handlers.Assignment.Delete)
	}

	// ─── 6. Payroll Configuration ──────────────────────────────────────
	coefRead := perm(model.PermissionCoefficientsRead)
	coefWrite := perm(model.PermissionCoefficientsWrite)

	hourlyRates := api.Group("/hourly-rates")
	{
		hourlyRates.GET("", coefRead, handlers.Coefficient.ListHourlyRates)
		hourlyRates.GET("/years/:year", coefRead, handlers.Coefficient.GetHourlyRateByYear)
		hourlyRates.GET("/:id", coefRead, handlers.Coefficient.GetHourlyRate)
		hourlyRates.POST("", coefWrite, handlers.Coefficient.CreateHourlyRate)
		hourlyRates.PUT("/:id", coefWrite, handlers.Coefficient.UpdateHourlyRate)
		hourlyRates.DELETE("/:id", coefWrite, handlers.Coefficient.DeleteHourlyRate)
	}

	teacherCoefficients := api.Group("/teacher-coefficients")
	{
		teacherCoefficients.GET("", coefRead, handlers.Coefficient.ListTeacherCoefficients)
		teacherCoefficients.GET("/years/:year", coefRead, handlers.Coefficient.TeacherCoefficientsForYear)
		teacherCoefficients.GET("/:id", coefRead, handlers.Coefficient.GetTeacherCoefficient)
		teacherCoefficients.POST("", coefWrite, handlers.Coefficient.CreateTeacherCoefficient)
		teacherCoefficients.PUT("/batch", coefWrite, handlers.Coefficient.BatchUpsertTeacherCoefficients)
		teacherCoefficients.PUT("/:id", coefWrite, handlers.Coefficient.UpdateTeacherCoefficient)
		teacherCoefficients.DELETE("/:id", coefWrite, handlers.Coefficient.DeleteTeacherCoefficient)
	}

	classCoefficients := api.Group("/class-coefficients")
	{
		classCoefficients.GET("/ranges", coefRead, handlers.Coefficient.StudentRanges)
		classCoefficients.GET("", coefRead, handlers.Coefficient.ListClassCoefficients)
		classCoefficients.GET("/years/:year", coefRead, handlers.Coefficient.ClassCoefficientForYear)
		classCoefficients.PUT("/years/:year", coefWrite, handlers.Coefficient.UpsertClassCoefficient)
		classCoefficients.GET("/:id", coefRead, handlers.Coefficient.GetClassCoefficient)
		classCoefficients.POST("", coefWrite, handlers.Coefficient.CreateClassCoefficient)
		classCoefficients.PUT("/:id", coefWrite, handlers.Coefficient.UpdateClassCoefficient)
		classCoefficients.DELETE("/:id", coefWrite, handlers.Coefficient.DeleteClassCoefficient)
	}

	// ─── 7. Payroll ────────────────────────────────────────────────────
	payroll := api.Group("/payroll")
	{
		payroll.POST("/calculate", perm(model.PermissionPayrollCalculate), middleware.NoStore(), handlers.Payroll.Calculate)
		payroll.POST("/calculate/export",
			perm(model.PermissionPayrollCalculate),
			perm(model.PermissionReportsExport),
			handlers.Payroll.CalculateExport,
		)
		payroll.GET("/academic-years", read, middleware.PrivateCache(academicYearsMaxAge), handlers.Payroll.AcademicYears)
		payroll.GET("/config-status/:year", coefRead, handlers.Payroll.ConfigStatus)
	}

	// ─── 8. Reports ────────────────────────────────────────────────────
	reports := api.Group("/reports")
	reports.Use(middleware.NoStore())
	{
		teacherAccess := middleware.RequireTeacherAccess("teacher_id")
		export := perm(model.PermissionReportsExport)
		readAll := perm(model.PermissionReportsReadAll)

		reports.GET("/teachers/:teacher_id/years/:year", teacherAccess, handlers.Report.TeacherYearly)
		reports.GET("/teachers/:teacher_id/years/:year/export", teacherAccess, export, handler.AsExport, handlers.Report.TeacherYearly)
		reports.GET("/teachers/:teacher_id/semesters/:semester_id", teacherAccess, handlers.Report.TeacherSemester)
		reports.GET("/teachers/:teacher_id/semesters/:semester_id/export", teacherAccess, export, handler.AsExport, handlers.Report.TeacherSemester)

		reports.GET("/departments/:department_id/years/:year", readAll, handlers.Report.Department)
		reports.GET("/departments/:department_id/years/:year/export", readAll, export, handler.AsExport, handlers.Report.Department)
		reports.GET("/institution/years/:year", readAll, handlers.Report.Institution)
		reports.GET("/institution/years/:year/export", readAll, export, handler.AsExport, handlers.Report.Institution)

		// Background exports for reports too large to render inline.
		reports.POST("/exports", export, handlers.Report.EnqueueExport)
		reports.GET("/exports/:job_id", export, handlers.Report.ExportStatus)
		reports.GET("/exports/:job_id/download", export, handlers.Report.DownloadExport)
	}

	// ─── 9. Statistics ─────────────────────────────────────────────────
	statistics := api.Group("/statistics")
	statistics.Use(perm(model.PermissionStatisticsRead))
	{
		export := perm(model.PermissionReportsExport)

		statistics.GET("/by-department", handlers.Statistics.ByDepartment)
		statistics.GET("/by-department/export", export, handler.AsExport, handlers.Statistics.ByDepartment)
		statistics.GET("/by-degree", handlers.Statistics.ByDegree)
		statistics.GET("/by-degree/export", export, handler.AsExport, handlers.Statistics.ByDegree)
		statistics.GET("/by-age", handlers.Statistics.ByAge)
		statistics.GET("/by-age/export", export, handler.AsExport, handlers.Statistics.ByAge)
	}

	// ─── 10. System ────────────────────────────────────────────────────
	api.GET("/system/status", perm(model.PermissionUsersManage), handlers.System.Status)

	return router
}
