package dto

// APIResponse is the envelope of every successful response.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the envelope of every failed response.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

// NewAPIResponse builds a success envelope. Success is derived from the status code.
func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	if data == nil {
		data = struct{}{}
	}
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewErrorResponse builds a failure envelope. errors is never null on the wire.
func NewErrorResponse(statusCode int, message string, errors []string) ErrorResponse {
	if errors == nil {
		errors = []string{}
	}
	return ErrorResponse{
		StatusCode: statusCode,
		Success:    false,
		Message:    message,
		Errors:     errors,
	}
}
