package commons

// Response is the JSON envelope used for error payloads. Successful
// responses from the calculator endpoints carry their own fixed shapes
// (see adapter/http/models), so only the failure branch goes through here.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}
