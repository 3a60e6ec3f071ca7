package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

var (
	academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)
	usernamePattern     = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
	requestIDPattern    = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)
)

// standalone checks values that never pass through request binding.
var standalone = newStandalone()

func newStandalone() *govalidator.Validate {
	v := govalidator.New()
	_ = v.RegisterValidation("request_id", validateRequestID)
	return v
}

// AllowedTotalPeriods are the period counts a subject may carry.
var AllowedTotalPeriods = []int{30, 45, 60, 90, 135}

type customTag struct {
	tag     string
	fn      govalidator.Func
	message string
}

var customTags = []customTag{
	{"academic_year", validateAcademicYear, "{0} must look like 2025-2026 with consecutive years"},
	{"student_range", validateStudentRange, "{0} must be one of <20, 20-29, 30-39, 40-49, 50-59, 60-69, 70-79, 80-89, 90-99, 100+"},
	{"total_periods", validateTotalPeriods, "{0} must be one of 30, 45, 60, 90, 135"},
	{"username", validateUsername, "{0} may only contain letters, digits, dots and underscores"},
}

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		Register(v)
	}
}

// Register installs the tag name function, custom tags and English
// translations on v.
func Register(v *govalidator.Validate) {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)

	for _, ct := range customTags {
		_ = v.RegisterValidation(ct.tag, ct.fn)
		message := ct.message
		_ = v.RegisterTranslation(ct.tag, trans,
			func(ut ut.Translator) error { return ut.Add(ct.tag, message, true) },
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			},
		)
	}
}

// ValidAcademicYear reports whether s has the YYYY-YYYY form with the
// second year following the first.
func ValidAcademicYear(s string) bool {
	if !academicYearPattern.MatchString(s) {
		return false
	}
	start, _ := strconv.Atoi(s[:4])
	end, _ := strconv.Atoi(s[5:])
	return end == start+1
}

// ValidRequestID reports whether a client-supplied request id is a short
// token safe to echo and log.
func ValidRequestID(s string) bool {
	return standalone.Var(s, "required,max=64,request_id") == nil
}

func validateRequestID(fl govalidator.FieldLevel) bool {
	return requestIDPattern.MatchString(fl.Field().String())
}

func validateAcademicYear(fl govalidator.FieldLevel) bool {
	return ValidAcademicYear(fl.Field().String())
}

func validateStudentRange(fl govalidator.FieldLevel) bool {
	return payroll.StudentRange(fl.Field().String()).Valid()
}

func validateTotalPeriods(fl govalidator.FieldLevel) bool {
	n := int(fl.Field().Int())
	for _, allowed := range AllowedTotalPeriods {
		if n == allowed {
			return true
		}
	}
	return false
}

func validateUsername(fl govalidator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
