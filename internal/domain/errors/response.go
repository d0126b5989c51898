package errors

// ErrorResponse is the JSON body of a request that fails outside a page flow,
// e.g. a rejected CSRF token or an unknown route.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

type ErrorInfo struct {
	Code    string `json:"code"` // e.g. "PRODUCT_NOT_FOUND"
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MetaInfo is attached to every JSON body so a user report can be matched to the logs.
type MetaInfo struct {
	RequestID string `json:"requestId"`
}
