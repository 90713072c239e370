// Package apierror provides the standardized response envelope for the JSON
// routes. Errors returned to clients go through this package so storage
// details and stack traces never leak.
package apierror

// Status values of APIResponse.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the {status, message} envelope the catalog page script
// expects. Batch routes add their counters; validation failures add Fields.
type APIResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Aceitos   *int              `json:"aceitos,omitempty"`
	Ignorados *int              `json:"ignorados,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// New returns an error envelope.
func New(msg string) *APIResponse {
	return &APIResponse{Status: StatusError, Message: msg}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *APIResponse {
	return &APIResponse{Status: StatusError, Message: "Erro de validação", Fields: fields}
}

// Sucesso returns a success envelope carrying the batch counters.
func Sucesso(msg string, aceitos, ignorados int) *APIResponse {
	return &APIResponse{Status: StatusSuccess, Message: msg, Aceitos: &aceitos, Ignorados: &ignorados}
}
