package dto

// ErrorResponse is the single error payload shape of the API.
type ErrorResponse struct {
	Status  string            `json:"status"`
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error types carried in ErrorResponse.Type
const (
	ErrorTypeValidation   = "validation"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeServer       = "server"
)

func NewErrorResponse(errType, message string, fields map[string]string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Type:    errType,
		Message: message,
		Errors:  fields,
	}
}
