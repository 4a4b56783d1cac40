package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие коды
const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Коды допуска на роли кастинга
const (
	CodeCastingNotFound      ErrorCode = "CASTING_NOT_FOUND"
	CodeRoleNotFound         ErrorCode = "ROLE_NOT_FOUND"
	CodeAssignmentNotFound   ErrorCode = "ASSIGNMENT_NOT_FOUND"
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeAlreadyApplied       ErrorCode = "ALREADY_APPLIED"
	CodeRoleNotRecruiting    ErrorCode = "ROLE_NOT_RECRUITING"
	CodeRoleMismatch         ErrorCode = "ROLE_MISMATCH"
	CodeNotApplicant         ErrorCode = "NOT_APPLICANT"
	CodeCapacityExceeded     ErrorCode = "CAPACITY_EXCEEDED"
	CodeCapacityBelowActive  ErrorCode = "CAPACITY_BELOW_ACTIVE"
	CodeInvalidCapacity      ErrorCode = "INVALID_CAPACITY"
	CodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	CodeCancelled            ErrorCode = "CANCELLED"
	CodeInvalidCastingStatus ErrorCode = "INVALID_CASTING_STATUS"
)
