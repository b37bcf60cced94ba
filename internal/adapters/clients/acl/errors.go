package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotesync/internal/adapters/clients"
	"github.com/jsamuelsen/quotesync/internal/domain"
)

// maxErrorBody caps how much of an error response is read for a message.
const maxErrorBody = 4 << 10

// remoteError is the loose shape of JSON error bodies: either
// {"error":{"message":...}} or {"message":...}.
type remoteError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (e *remoteError) message() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// parseErrorMessage extracts a message from an error body, or "".
func parseErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	var re remoteError
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&re); err != nil {
		return ""
	}

	return re.message()
}

// MapHTTPError translates a failed call into a domain error.
// clientErr takes precedence; otherwise resp must carry a non-2xx status.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	msg := parseErrorMessage(resp.Body)
	if msg == "" {
		msg = fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	}

	return mapStatusCode(resp.StatusCode, msg, serviceName, operation)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, "circuit breaker open during "+operation)
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, "max retries exceeded during "+operation)
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatusCode(status int, msg, serviceName, operation string) error {
	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, operation)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s: %s", domain.ErrConflict, serviceName, msg)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", domain.ErrForbidden, operation, msg)
	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(serviceName, msg)
	default:
		return domain.NewValidationError("", msg)
	}
}
