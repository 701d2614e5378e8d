// Package headers defines HTTP header constants used across the NPCForge platform.
// This is the single source of truth for header names used in API requests/responses.
package headers

const (
	// RequestID is the header for request correlation / idempotency.
	// Clients can supply this header for idempotency on retries.
	RequestID = "X-NPCForge-Request-Id"

	// APIKey is the header for API key authentication.
	APIKey = "X-NPCForge-Api-Key" //nolint:gosec // This is a header name, not a credential

	// PlayerID is the header identifying the player on whose behalf a
	// request is made. Attribution, quotas, and consent gates key off it.
	PlayerID = "X-NPCForge-Player-Id"

	// RetryAfter is the standard header carrying the rate-limit backoff hint.
	RetryAfter = "Retry-After"
)
