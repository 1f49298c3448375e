package api

// ErrorResponse is the error body the front end expects: a message plus,
// for validation failures, a field -> messages map it flattens for display.
type ErrorResponse struct {
	Message string              `json:"message" example:"No se pudo completar la operación"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database,omitempty" example:"ok"`
	Redis    string `json:"redis,omitempty" example:"ok"`
}

func Error(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

func ValidationError(errors map[string][]string) ErrorResponse {
	return ErrorResponse{Message: "Los datos proporcionados no son válidos", Errors: errors}
}
