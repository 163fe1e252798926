package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "El registro no existe")
	ErrEmptySelection   = NewDomainError("EMPTY_SELECTION", "Selecciona al menos un elemento")
	ErrAlreadySubmitted = NewDomainError("ALREADY_SUBMITTED", "Este formulario ya fue enviado")
	ErrSessionExpired   = NewDomainError("SESSION_EXPIRED", "Tu sesión expiró, inicia sesión de nuevo")
)
