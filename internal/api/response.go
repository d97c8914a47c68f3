package api

// ProductListResponse is one page of products with keyset cursors.
// @Description Page of products
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor,omitempty"`
	PrevCursor string            `json:"prev_cursor,omitempty"`
}

// ErrorResponse represents all API error responses.
// @Description Standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the specifics of an API error. Param names the
// offending form or JSON field when there is one.
// @Description Error details
type ErrorDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// Error codes are stable identifiers clients can branch on; messages are not.
const (
	CodeResourceMissing    = "resource_missing"
	CodeParameterInvalid   = "parameter_invalid"
	CodeUnauthenticated    = "unauthenticated"
	CodeForbidden          = "forbidden"
	CodeServiceUnavailable = "service_unavailable"
	CodeTimeout            = "timeout"
	CodeInternal           = "internal_error"
)

func errorType(status int) string {
	switch {
	case status == 401 || status == 403:
		return "authentication_error"
	case status >= 400 && status < 500:
		return "invalid_request_error"
	default:
		return "api_error"
	}
}

func newErrorResponse(status int, code, message, param string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Type:    errorType(status),
			Code:    code,
			Message: message,
			Param:   param,
		},
	}
}
