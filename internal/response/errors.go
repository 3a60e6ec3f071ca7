package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrTokenRevoked       ErrCode = "TOKEN_REVOKED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation          ErrCode = "VALIDATION_ERROR"
	ErrInvalidID           ErrCode = "INVALID_ID"
	ErrInvalidPayload      ErrCode = "INVALID_PAYLOAD"
	ErrInvalidDateRange    ErrCode = "INVALID_DATE_RANGE"
	ErrInvalidReference    ErrCode = "INVALID_REFERENCE"
	ErrTeacherLinkRequired ErrCode = "TEACHER_LINK_REQUIRED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound             ErrCode = "NOT_FOUND"
	ErrConflict             ErrCode = "CONFLICT"
	ErrDependencyExists     ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden      ErrCode = "ACTION_FORBIDDEN"
	ErrCannotDeleteSelf     ErrCode = "CANNOT_DELETE_SELF"
	ErrClassAlreadyAssigned ErrCode = "CLASS_ALREADY_ASSIGNED"
	ErrAlreadyConfigured    ErrCode = "ALREADY_CONFIGURED"

	// ─── Payroll ───────────────────────────────────────────────────────
	ErrConfigurationMissing ErrCode = "CONFIGURATION_MISSING"
	ErrSemesterYearMismatch ErrCode = "SEMESTER_YEAR_MISMATCH"
	ErrExportNotReady       ErrCode = "EXPORT_NOT_READY"
	ErrExportFailed         ErrCode = "EXPORT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Tên đăng nhập hoặc mật khẩu không đúng."
	case ErrAccountDisabled:
		return "Tài khoản đã bị vô hiệu hóa."
	case ErrTokenRequired:
		return "Yêu cầu mã xác thực."
	case ErrTokenInvalid:
		return "Mã xác thực không hợp lệ."
	case ErrTokenExpired:
		return "Mã xác thực đã hết hạn."
	case ErrTokenRevoked:
		return "Phiên đăng nhập đã kết thúc. Vui lòng đăng nhập lại."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bạn không có quyền truy cập tài nguyên này."
	case ErrPermissionDenied:
		return "Không đủ quyền."
	case ErrTeacherAccessOnly:
		return "Bạn chỉ được xem báo cáo của chính mình."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidID:
		return "Định dạng ID không hợp lệ."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."
	case ErrInvalidDateRange:
		return "Ngày kết thúc phải sau ngày bắt đầu."
	case ErrInvalidReference:
		return "Dữ liệu tham chiếu không tồn tại."
	case ErrTeacherLinkRequired:
		return "Tài khoản giáo viên phải gắn với một giáo viên, các vai trò khác thì không."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."
	case ErrConflict:
		return "Dữ liệu đã tồn tại."
	case ErrDependencyExists:
		return "Không thể xóa vì dữ liệu đang được sử dụng."
	case ErrActionForbidden:
		return "Thao tác này không được phép."
	case ErrCannotDeleteSelf:
		return "Không thể xóa tài khoản đang đăng nhập."
	case ErrClassAlreadyAssigned:
		return "Lớp học phần đã được phân công cho giáo viên khác."
	case ErrAlreadyConfigured:
		return "Năm học này đã được cấu hình."

	// ─── Payroll ───────────────────────────────────────────────────────
	case ErrConfigurationMissing:
		return "Chưa cấu hình đầy đủ hệ số cho năm học."
	case ErrSemesterYearMismatch:
		return "Kỳ học không thuộc năm học đã chọn."
	case ErrExportNotReady:
		return "Tệp báo cáo chưa sẵn sàng."
	case ErrExportFailed:
		return "Xuất báo cáo thất bại."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Lỗi máy chủ nội bộ."
	default:
		return "Đã xảy ra lỗi không xác định."
	}
}
