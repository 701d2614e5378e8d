package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/npcforge/npcforge-go/headers"
)

// ErrorKind classifies an API failure for programmatic branching. The kind is
// derived from the HTTP status code alone, never from body heuristics.
type ErrorKind string

const (
	// ErrorKindAuthentication covers invalid or missing credentials (401).
	ErrorKindAuthentication ErrorKind = "authentication"
	// ErrorKindPaymentRequired covers a missing, insufficient, or frozen wallet (402).
	ErrorKindPaymentRequired ErrorKind = "payment_required"
	// ErrorKindForbidden covers feature, consent, or game-state gates (403).
	ErrorKindForbidden ErrorKind = "forbidden"
	// ErrorKindNotFound covers absent resources (404).
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindValidation covers rejected request payloads (422).
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindRateLimit covers throttled requests (429).
	ErrorKindRateLimit ErrorKind = "rate_limit"
	// ErrorKindProvider covers upstream AI provider failures (502).
	ErrorKindProvider ErrorKind = "provider"
	// ErrorKindGeneric covers every other non-2xx status.
	ErrorKindGeneric ErrorKind = "api_error"
)

// kindForStatus maps an HTTP status to its error kind, one-to-one.
func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return ErrorKindAuthentication
	case http.StatusPaymentRequired:
		return ErrorKindPaymentRequired
	case http.StatusForbidden:
		return ErrorKindForbidden
	case http.StatusNotFound:
		return ErrorKindNotFound
	case http.StatusUnprocessableEntity:
		return ErrorKindValidation
	case http.StatusTooManyRequests:
		return ErrorKindRateLimit
	case http.StatusBadGateway:
		return ErrorKindProvider
	default:
		return ErrorKindGeneric
	}
}

// APIError captures structured error metadata reported by the NPCForge API.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Code    string
	Type    string
	Message string
	// Details carries structured context for validation and generic errors.
	Details json.RawMessage
	// RetryAfter is the rate-limit backoff hint in seconds, when the server sent one.
	RetryAfter *int
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("API error (%d)", e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsAuthentication reports whether err is a 401 authentication error.
func IsAuthentication(err error) bool { return IsKind(err, ErrorKindAuthentication) }

// IsPaymentRequired reports whether err is a 402 wallet error.
func IsPaymentRequired(err error) bool { return IsKind(err, ErrorKindPaymentRequired) }

// IsForbidden reports whether err is a 403 gate error.
func IsForbidden(err error) bool { return IsKind(err, ErrorKindForbidden) }

// IsNotFound reports whether err is a 404 error.
func IsNotFound(err error) bool { return IsKind(err, ErrorKindNotFound) }

// IsValidation reports whether err is a 422 validation error.
func IsValidation(err error) bool { return IsKind(err, ErrorKindValidation) }

// IsRateLimit reports whether err is a 429 rate-limit error.
func IsRateLimit(err error) bool { return IsKind(err, ErrorKindRateLimit) }

// IsProvider reports whether err is a 502 upstream provider error.
func IsProvider(err error) bool { return IsKind(err, ErrorKindProvider) }

// RetryDelay extracts the server's retry-after hint from err. The SDK never
// retries on its own; callers wanting backoff use this with their own loop.
func RetryDelay(err error) (time.Duration, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.RetryAfter == nil {
		return 0, false
	}
	return time.Duration(*apiErr.RetryAfter) * time.Second, true
}

// errorEnvelope mirrors the wire shape {"error": "..."} or
// {"error": {"message","type","code","details"}}.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

type errorObject struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

// decodeAPIError turns a non-2xx response into exactly one *APIError. It
// always returns a non-nil error; the kind is keyed strictly by status.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	kind := kindForStatus(resp.StatusCode)
	apiErr := &APIError{
		Kind:      kind,
		Status:    resp.StatusCode,
		RequestID: resp.Header.Get(headers.RequestID),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Error) > 0 {
		var msg string
		if err := json.Unmarshal(envelope.Error, &msg); err == nil {
			apiErr.Message = msg
		} else {
			var obj errorObject
			if err := json.Unmarshal(envelope.Error, &obj); err == nil {
				apiErr.Message = obj.Message
				apiErr.Code = obj.Code
				apiErr.Type = obj.Type
				if kind == ErrorKindValidation || kind == ErrorKindGeneric {
					apiErr.Details = obj.Details
				}
			}
		}
	} else if apiErr.Message == "" {
		// Unparseable body: fall back to the status line.
		apiErr.Message = resp.Status
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("API error (%d)", resp.StatusCode)
	}

	if kind == ErrorKindRateLimit {
		raw := strings.TrimSpace(resp.Header.Get(headers.RetryAfter))
		if secs, err := strconv.Atoi(raw); err == nil {
			apiErr.RetryAfter = &secs
		}
	}
	return apiErr
}
