package shared

// DomainError is the error type crossing the domain boundary. The code is
// a stable identifier the HTTP layer maps to a status; the message is safe
// to show to clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches by code so wrapped domain errors compare against the
// sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels shared by every bounded context. Context-specific errors
// (USERNAME_EXISTS, INVALID_PROJECT_NAME) are minted where they occur.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
