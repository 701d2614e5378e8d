package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/npcforge/npcforge-go/routes"
)

// TokenType represents the OAuth2 token type.
type TokenType string

// TokenTypeBearer is the only valid token type for player tokens.
const TokenTypeBearer TokenType = "Bearer"

// PlayerTokenRequest mints a player-scoped bearer token (requires secret key auth).
// Exactly one of PlayerID or PlayerExternalID is required.
type PlayerTokenRequest struct {
	PlayerID         *uuid.UUID `json:"player_id,omitempty"`
	PlayerExternalID string     `json:"player_external_id,omitempty"`
	TTLSeconds       int64      `json:"ttl_seconds,omitempty"`
}

// NewPlayerTokenRequestForID builds a request keyed by the platform player ID.
func NewPlayerTokenRequestForID(playerID uuid.UUID) PlayerTokenRequest {
	id := playerID
	return PlayerTokenRequest{PlayerID: &id}
}

// NewPlayerTokenRequestForExternalID builds a request keyed by your external identifier.
func NewPlayerTokenRequestForExternalID(externalID string) PlayerTokenRequest {
	return PlayerTokenRequest{PlayerExternalID: externalID}
}

// Validate returns an error unless exactly one player reference is set.
func (r PlayerTokenRequest) Validate() error {
	hasID := r.PlayerID != nil && *r.PlayerID != uuid.Nil
	hasExternal := r.PlayerExternalID != ""
	if hasID == hasExternal {
		return fmt.Errorf("provide exactly one of player_id or player_external_id")
	}
	if r.TTLSeconds < 0 {
		return fmt.Errorf("ttl_seconds must be non-negative")
	}
	return nil
}

// PlayerToken holds the issued bearer token for player-attributed calls.
type PlayerToken struct {
	Token            string     `json:"token"`
	ExpiresAt        time.Time  `json:"expires_at"`
	ExpiresIn        int        `json:"expires_in"`
	TokenType        TokenType  `json:"token_type"`
	GameID           uuid.UUID  `json:"game_id"`
	PlayerID         *uuid.UUID `json:"player_id,omitempty"`
	PlayerExternalID string     `json:"player_external_id"`
}

// AuthClient wraps authentication-related endpoints.
type AuthClient struct {
	client *Client
}

// PlayerToken mints a player-scoped bearer token (requires secret key auth).
func (a *AuthClient) PlayerToken(ctx context.Context, req PlayerTokenRequest) (PlayerToken, error) {
	if a == nil || a.client == nil {
		return PlayerToken{}, fmt.Errorf("sdk: auth client not initialized")
	}
	if err := req.Validate(); err != nil {
		return PlayerToken{}, fmt.Errorf("sdk: %w", err)
	}
	if !a.client.hasSecretKey() {
		return PlayerToken{}, fmt.Errorf("sdk: minting player tokens requires a secret key (nf_sk_*)")
	}
	var payload PlayerToken
	if err := a.client.sendAndDecode(ctx, http.MethodPost, routes.AuthPlayerToken, req, &payload); err != nil {
		return PlayerToken{}, err
	}
	return payload, nil
}
