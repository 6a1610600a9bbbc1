package models

// Error codes returned in the "error_code" field of failed API responses
const (
	ErrorCodeMissingField       = "MISSING_FIELD"
	ErrorCodeInvalidFormat      = "INVALID_FORMAT"
	ErrorCodeInvalidValue       = "INVALID_VALUE"
	ErrorCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrorCodeEmailExists        = "EMAIL_EXISTS"
	ErrorCodeUnauthorized       = "UNAUTHORIZED"
	ErrorCodeInvalidSession     = "INVALID_SESSION"
	ErrorCodeNotFound           = "NOT_FOUND"
	ErrorCodeSystem             = "SYSTEM_ERROR"
)

// ErrorResponse is the body of every failed /api response
type ErrorResponse struct {
	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
