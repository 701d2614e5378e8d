package sdk

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func fakeResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestKindForStatusIsTotal(t *testing.T) {
	cases := map[int]ErrorKind{
		401: ErrorKindAuthentication,
		402: ErrorKindPaymentRequired,
		403: ErrorKindForbidden,
		404: ErrorKindNotFound,
		422: ErrorKindValidation,
		429: ErrorKindRateLimit,
		502: ErrorKindProvider,
		400: ErrorKindGeneric,
		418: ErrorKindGeneric,
		500: ErrorKindGeneric,
		503: ErrorKindGeneric,
	}
	for status, want := range cases {
		if got := kindForStatus(status); got != want {
			t.Errorf("status %d: got %s, want %s", status, got, want)
		}
	}
}

func TestDecodeAPIErrorRateLimit(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "30")
	resp := fakeResponse(429, `{"error":{"message":"slow down","code":"quota"}}`, header)

	err := decodeAPIError(resp)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != ErrorKindRateLimit || apiErr.Status != 429 {
		t.Fatalf("unexpected classification: %+v", apiErr)
	}
	if apiErr.Message != "slow down" || apiErr.Code != "quota" {
		t.Fatalf("unexpected body fields: %+v", apiErr)
	}
	if apiErr.RetryAfter == nil || *apiErr.RetryAfter != 30 {
		t.Fatalf("unexpected retry-after: %+v", apiErr.RetryAfter)
	}
	if delay, ok := RetryDelay(err); !ok || delay != 30*time.Second {
		t.Fatalf("RetryDelay = %v, %v", delay, ok)
	}
	if !IsRateLimit(err) {
		t.Fatalf("IsRateLimit should match")
	}
}

func TestDecodeAPIErrorStringBody(t *testing.T) {
	err := decodeAPIError(fakeResponse(404, `{"error":"player not found"}`, nil))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != ErrorKindNotFound || apiErr.Message != "player not found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if apiErr.Code != "" || apiErr.Type != "" || apiErr.Details != nil {
		t.Fatalf("string errors carry no code/type/details: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound should match")
	}
}

func TestDecodeAPIErrorUnparseableBody(t *testing.T) {
	err := decodeAPIError(fakeResponse(500, "<html>bad gateway page</html>", nil))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != ErrorKindGeneric || apiErr.Status != 500 {
		t.Fatalf("unexpected classification: %+v", apiErr)
	}
	if !strings.Contains(apiErr.Message, "500") {
		t.Fatalf("fallback message should come from the status line, got %q", apiErr.Message)
	}
}

func TestDecodeAPIErrorMessageFallback(t *testing.T) {
	err := decodeAPIError(fakeResponse(403, `{"error":{"code":"consent_required"}}`, nil))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "API error (403)" {
		t.Fatalf("unexpected fallback message %q", apiErr.Message)
	}
	if apiErr.Code != "consent_required" {
		t.Fatalf("unexpected code %q", apiErr.Code)
	}
}

func TestDecodeAPIErrorDetailsOnlyForValidationAndGeneric(t *testing.T) {
	body := `{"error":{"message":"bad","details":{"field":"npc_id"}}}`

	err := decodeAPIError(fakeResponse(422, body, nil))
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Details == nil {
		t.Fatalf("validation errors carry details: %+v", apiErr)
	}

	err = decodeAPIError(fakeResponse(500, body, nil))
	if !errors.As(err, &apiErr) || apiErr.Details == nil {
		t.Fatalf("generic errors carry details: %+v", apiErr)
	}

	err = decodeAPIError(fakeResponse(401, body, nil))
	if !errors.As(err, &apiErr) || apiErr.Details != nil {
		t.Fatalf("authentication errors do not carry details: %+v", apiErr)
	}
}

func TestDecodeAPIErrorNonNumericRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	err := decodeAPIError(fakeResponse(429, `{"error":"slow down"}`, header))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.RetryAfter != nil {
		t.Fatalf("non-numeric retry-after must be treated as absent: %+v", apiErr.RetryAfter)
	}
	if _, ok := RetryDelay(err); ok {
		t.Fatalf("RetryDelay should report no hint")
	}
}

func TestPredicatesMatchWrappedErrors(t *testing.T) {
	base := decodeAPIError(fakeResponse(402, `{"error":"wallet frozen"}`, nil))
	wrapped := fmt.Errorf("charging npc dialogue: %w", base)
	if !IsPaymentRequired(wrapped) {
		t.Fatalf("IsPaymentRequired should see through wrapping")
	}
	if IsRateLimit(wrapped) {
		t.Fatalf("IsRateLimit should not match a 402")
	}
}

func TestAPIErrorStringFormat(t *testing.T) {
	err := &APIError{Kind: ErrorKindProvider, Status: 502, Message: "upstream timeout"}
	if got := err.Error(); got != "provider: upstream timeout" {
		t.Fatalf("unexpected Error() %q", got)
	}
	err = &APIError{Kind: ErrorKindGeneric, Status: 500, Code: "INTERNAL"}
	if got := err.Error(); got != "INTERNAL: API error (500)" {
		t.Fatalf("unexpected Error() %q", got)
	}
}
