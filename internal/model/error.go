package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeMealNotFound  = "MEAL_NOT_FOUND"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so wrapped or
// freshly built domain errors still match the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidInputError creates an INVALID_INPUT error with a caller-facing message.
func NewInvalidInputError(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message)
}

// Common domain errors
var (
	ErrUnauthorised  = NewDomainError(ErrCodeUnauthorised, "Unauthorized.")
	ErrMealNotFound  = NewDomainError(ErrCodeMealNotFound, "This user has no this specific meal or does not exist.")
	ErrNoMeals       = NewDomainError(ErrCodeMealNotFound, "This user has no meals or does not exist.")
	ErrInvalidInput  = NewDomainError(ErrCodeInvalidInput, "Invalid input.")
	ErrInvalidMealID = NewDomainError(ErrCodeInvalidInput, "Meal ID must be a valid UUID.")
	ErrEmailTaken    = NewDomainError(ErrCodeConflict, "A user with this email already exists.")
)
