package models

// PredictionResult is the classification returned by the prediction service.
// Probability is a pointer so a missing value can be told apart from zero.
type PredictionResult struct {
	Prediction  string   `json:"prediction"`
	Probability *float64 `json:"probability"`
}

// ErrorKind tags where a RequestError came from
type ErrorKind string

const (
	// ErrorKindTransport covers HTTP error statuses and network failures
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindUnknown covers everything else
	ErrorKindUnknown ErrorKind = "unknown"
)

const (
	TransportFallbackMessage = "could not connect to the prediction service"
	UnknownErrorMessage      = "unexpected error"
)

// RequestError is the normalized failure shown to the user
type RequestError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	cause error
}

// NewTransportError builds a transport failure. An empty message falls back to
// TransportFallbackMessage.
func NewTransportError(message string, cause error) *RequestError {
	if message == "" {
		message = TransportFallbackMessage
	}
	return &RequestError{Kind: ErrorKindTransport, Message: message, cause: cause}
}

// NewUnknownError builds a failure that could not be classified
func NewUnknownError(cause error) *RequestError {
	return &RequestError{Kind: ErrorKindUnknown, Message: UnknownErrorMessage, cause: cause}
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.cause
}
