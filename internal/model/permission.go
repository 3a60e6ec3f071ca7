package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionUsersManage allows creating, updating and deleting login accounts.
	PermissionUsersManage Permission = "users:manage"

	// PermissionReferenceRead allows viewing degrees, departments, teachers,
	// subjects, semesters, course classes and assignments.
	PermissionReferenceRead Permission = "reference:read"

	// PermissionTeachersWrite allows managing teachers.
	PermissionTeachersWrite Permission = "teachers:write"

	// PermissionDepartmentsWrite allows managing degrees and departments.
	PermissionDepartmentsWrite Permission = "departments:write"

	// PermissionSubjectsWrite allows managing subjects.
	PermissionSubjectsWrite Permission = "subjects:write"

	// PermissionSemestersWrite allows managing semesters.
	PermissionSemestersWrite Permission = "semesters:write"

	// PermissionCourseClassesWrite allows opening course classes and editing enrolment.
	PermissionCourseClassesWrite Permission = "course_classes:write"

	// PermissionAssignmentsWrite allows assigning teachers to course classes.
	PermissionAssignmentsWrite Permission = "assignments:write"

	// PermissionCoefficientsRead allows viewing hourly rates and coefficients.
	PermissionCoefficientsRead Permission = "coefficients:read"

	// PermissionCoefficientsWrite allows managing hourly rates and coefficients.
	PermissionCoefficientsWrite Permission = "coefficients:write"

	// PermissionPayrollCalculate allows calculating any teacher's payroll.
	PermissionPayrollCalculate Permission = "payroll:calculate"

	// PermissionReportsReadAll allows viewing every payroll report.
	PermissionReportsReadAll Permission = "reports:read_all"

	// PermissionReportsReadOwn allows viewing one's own teacher reports.
	PermissionReportsReadOwn Permission = "reports:read_own"

	// PermissionReportsExport allows exporting reports to spreadsheets.
	PermissionReportsExport Permission = "reports:export"

	// PermissionStatisticsRead allows viewing staff statistics.
	PermissionStatisticsRead Permission = "statistics:read"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionUsersManage,
	PermissionReferenceRead,
	PermissionTeachersWrite,
	PermissionDepartmentsWrite,
	PermissionSubjectsWrite,
	PermissionSemestersWrite,
	PermissionCourseClassesWrite,
	PermissionAssignmentsWrite,
	PermissionCoefficientsRead,
	PermissionCoefficientsWrite,
	PermissionPayrollCalculate,
	PermissionReportsReadAll,
	PermissionReportsReadOwn,
	PermissionReportsExport,
	PermissionStatisticsRead,
}

var rolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleFacultyManager: {
		PermissionReferenceRead,
		PermissionTeachersWrite,
		PermissionDepartmentsWrite,
		PermissionSubjectsWrite,
		PermissionSemestersWrite,
		PermissionCourseClassesWrite,
		PermissionAssignmentsWrite,
		PermissionCoefficientsRead,
		PermissionReportsReadAll,
		PermissionReportsReadOwn,
		PermissionReportsExport,
		PermissionStatisticsRead,
	},
	RoleAccountant: {
		PermissionReferenceRead,
		PermissionCoefficientsRead,
		PermissionCoefficientsWrite,
		PermissionPayrollCalculate,
		PermissionReportsReadAll,
		PermissionReportsReadOwn,
		PermissionReportsExport,
		PermissionStatisticsRead,
	},
	RoleTeacher: {
		PermissionReferenceRead,
		PermissionCoefficientsRead,
		PermissionReportsReadOwn,
	},
}
