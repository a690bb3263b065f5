package errors

// ErrorResponse is the JSON form of a failed dispatch.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details.
type ErrorBody struct {
	Domain     string         `json:"domain"`
	Code       int            `json:"code"`
	Kind       Kind           `json:"kind"`
	Message    string         `json:"message"`
	MessageKey string         `json:"message_key,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Domain:     e.Domain,
			Code:       e.Code,
			Kind:       e.Kind,
			Message:    e.Message,
			MessageKey: e.MessageKey,
			Details:    e.Details,
		},
	}
}

// ResponseFor builds an ErrorResponse for any error. Errors outside the
// domain keep their own message and are reported as transport failures.
func ResponseFor(err error) ErrorResponse {
	if appErr, ok := AsAppError(err); ok {
		return appErr.ToResponse()
	}
	return ErrorResponse{
		Error: ErrorBody{
			Kind:    KindTransport,
			Message: err.Error(),
		},
	}
}
