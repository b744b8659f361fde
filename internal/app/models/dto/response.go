package dto

// APIResponse is the uniform envelope returned by every endpoint.
// Error carries a localized message when Success is false.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewMessageResponse builds a success envelope carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// NewErrorResponse builds a failure envelope with a localized error message
func NewErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// NewListResponse wraps a list plus out-of-band metadata
func NewListResponse(data, meta interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Meta: meta}
}
