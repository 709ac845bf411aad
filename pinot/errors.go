package pinot

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies failures surfaced by the cluster info fetcher.
type ErrorCode string

const (
	CodeInvalidConfiguration ErrorCode = "PINOT_INVALID_CONFIGURATION"
	CodeHTTPError            ErrorCode = "PINOT_HTTP_ERROR"
	CodeUnableToFindBroker   ErrorCode = "PINOT_UNABLE_TO_FIND_BROKER"
	CodeBrokerParse          ErrorCode = "PINOT_BROKER_PARSE_ERROR"
	CodeUnexpectedResponse   ErrorCode = "PINOT_UNEXPECTED_RESPONSE"
)

var (
	// ErrInvalidConfiguration is returned when no usable controller address is configured.
	ErrInvalidConfiguration = &ClusterError{Code: CodeInvalidConfiguration}
	// ErrHTTP matches every *HTTPError.
	ErrHTTP = &ClusterError{Code: CodeHTTPError}
	// ErrBrokerNotFound is returned when no broker can serve a table.
	ErrBrokerNotFound = &ClusterError{Code: CodeUnableToFindBroker}
	// ErrBrokerParse is returned when a broker instance id does not look like Broker_<host>_<port>.
	ErrBrokerParse = &ClusterError{Code: CodeBrokerParse}
	// ErrUnexpectedResponse is returned when a broker answers with an unusable payload.
	ErrUnexpectedResponse = &ClusterError{Code: CodeUnexpectedResponse}
)

// ClusterError is the typed error of this package. Use errors.Is against the
// Err* sentinels to check the kind.
type ClusterError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func newClusterError(code ErrorCode, cause error, format string, args ...interface{}) *ClusterError {
	return &ClusterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

func (e *ClusterError) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClusterError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ClusterError with the same code.
func (e *ClusterError) Is(target error) bool {
	t, ok := target.(*ClusterError)
	return ok && t.Code == e.Code
}

// HTTPError is returned when the controller or a broker answers outside the 2xx range.
type HTTPError struct {
	StatusCode  int
	URI         string
	Header      http.Header
	Body        string
	RequestBody string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(
		"%s: unexpected response status: %d for request %s to url %s, with headers %v, full response %s",
		CodeHTTPError, e.StatusCode, e.RequestBody, e.URI, e.Header, e.Body,
	)
}

// Is makes errors.Is(err, ErrHTTP) hold for every HTTPError.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*ClusterError)
	return ok && t.Code == CodeHTTPError
}

// isClusterError reports whether err already carries one of this package's error kinds.
func isClusterError(err error) bool {
	var ce *ClusterError
	var he *HTTPError
	return errors.As(err, &ce) || errors.As(err, &he)
}
