package errors

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "quota_exceeded")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// 403 body for an exhausted free tier, pointing the client at the upgrade flow
type QuotaExceededResponse struct {
	Error      string `json:"error" example:"quota_exceeded"`
	Message    string `json:"message"`
	UpgradeURL string `json:"upgrade_url,omitempty" example:"https://lessonplanner.example/pricing"`
	Tier       string `json:"tier" example:"free"`
	Remaining  int    `json:"usage_remaining" example:"0"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}

// standard error codes
const (
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeValidationError = "validation_error"
	CodeServerError     = "server_error"
	CodeBadRequest      = "bad_request"
	CodeTooManyRequests = "too_many_requests"
	CodeQuotaExceeded   = "quota_exceeded"
)

// error categories for classification
const (
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUpstream   = "upstream"
	CategoryUnknown    = "unknown"
)
