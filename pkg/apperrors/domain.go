package apperrors

import (
	"net/http"
)

/*
Предопределенные ошибки домена допуска (admission).
Сервисы возвращают их как есть или через WithError/WithDetails;
сравнение - через errors.Is.
*/

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Not found ---

var ErrCastingNotFound = New(
	CodeCastingNotFound,
	"casting",
	"Casting not found",
	http.StatusNotFound,
)

// ErrRoleNotFound - кастинг не набирает на эту роль (для запросов к леджеру).
var ErrRoleNotFound = New(
	CodeRoleNotFound,
	"casting",
	"Casting does not declare this role",
	http.StatusNotFound,
)

var ErrAssignmentNotFound = New(
	CodeAssignmentNotFound,
	"admission",
	"Assignment not found",
	http.StatusNotFound,
)

var ErrUserNotFound = New(
	CodeUserNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Apply ---

var ErrAlreadyApplied = New(
	CodeAlreadyApplied,
	"admission",
	"User has already applied to this casting",
	http.StatusConflict,
)

// ErrRoleNotRecruiting - кастинг не активен или не объявлял роль заявителя.
var ErrRoleNotRecruiting = New(
	CodeRoleNotRecruiting,
	"admission",
	"Casting is not recruiting for this role",
	http.StatusUnprocessableEntity,
)

var ErrRoleMismatch = New(
	CodeRoleMismatch,
	"admission",
	"Requested role differs from the applicant's declared role",
	http.StatusUnprocessableEntity,
)

var ErrNotApplicant = New(
	CodeNotApplicant,
	"admission",
	"Only talent accounts can apply to castings",
	http.StatusForbidden,
)

// --- Transitions ---

var ErrCapacityExceeded = New(
	CodeCapacityExceeded,
	"admission",
	"Role capacity is exhausted",
	http.StatusConflict,
)

var ErrInvalidTransition = New(
	CodeInvalidTransition,
	"admission",
	"Status transition is not allowed",
	http.StatusConflict,
)

// ErrCancelled - вызывающий отказался ждать входа в домен кастинга.
var ErrCancelled = New(
	CodeCancelled,
	"admission",
	"Request cancelled while waiting for the casting",
	http.StatusRequestTimeout,
)

// --- Capacity changes ---

var ErrCapacityBelowActive = New(
	CodeCapacityBelowActive,
	"admission",
	"Capacity cannot be lower than the number of active assignments",
	http.StatusConflict,
)

var ErrInvalidCapacity = New(
	CodeInvalidCapacity,
	"admission",
	"Capacity must be at least 1",
	http.StatusBadRequest,
)

// --- Castings & notifications ---

var ErrInvalidCastingStatus = New(
	CodeInvalidCastingStatus,
	"casting",
	"Operation is not allowed in the current casting status",
	http.StatusConflict,
)

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)
