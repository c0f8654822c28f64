package apperrors

import (
	"net/http"
)

// ErrStorage - ошибка blob-хранилища (500)
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "File storage error", http.StatusInternalServerError)
}

// --- Auth ---

var ErrNotAuthenticated = New(
	CodeUnauthorized,
	"auth",
	"Not authenticated",
	http.StatusUnauthorized,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrAdminOnly = New(
	CodeForbidden,
	"auth",
	"Access allowed to administrators only",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"user",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrTooManyRequests = New(
	CodeTooManyRequests,
	"auth",
	"Too many requests, try again later",
	http.StatusTooManyRequests,
)

// --- Documents ---

var ErrDocumentNotFound = New(
	CodeNotFound,
	"document",
	"Document not found",
	http.StatusNotFound,
)

var ErrDocumentAccessDenied = New(
	CodeForbidden,
	"document",
	"Access to document denied",
	http.StatusForbidden,
)

var ErrDocTypeNotFound = New(
	CodeNotFound,
	"doc_type",
	"Document type not found",
	http.StatusNotFound,
)

var ErrInvalidDate = New(
	CodeValidationFailed,
	"validation",
	"Invalid date format, expected YYYY-MM-DD",
	http.StatusBadRequest,
)

var ErrFileRequired = New(
	CodeValidationFailed,
	"validation",
	"File is required",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// --- Notifications ---

// ErrNotificationNotFound одинаково описывает "нет такого" и "не ваше"
var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// --- Identity ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"user",
	"Username already exists",
	http.StatusConflict,
)

var ErrDepartmentNotFound = New(
	CodeNotFound,
	"department",
	"Department not found",
	http.StatusNotFound,
)

var ErrDepartmentExists = New(
	CodeAlreadyExists,
	"department",
	"Department with this name already exists",
	http.StatusConflict,
)

var ErrDepartmentInUse = New(
	CodeConflict,
	"department",
	"Department has users and cannot be deleted",
	http.StatusConflict,
)

var ErrDocTypeExists = New(
	CodeAlreadyExists,
	"doc_type",
	"Document type with this name already exists",
	http.StatusConflict,
)

var ErrResponsibleNotFound = New(
	CodeNotFound,
	"responsible",
	"Responsible assignment not found",
	http.StatusNotFound,
)

var ErrResponsibleExists = New(
	CodeAlreadyExists,
	"responsible",
	"User is already responsible for this department",
	http.StatusConflict,
)
