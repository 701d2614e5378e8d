package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/npcforge/npcforge-go/routes"
)

// PlayerMetadata holds arbitrary per-player metadata.
type PlayerMetadata map[string]any

// Player represents a registered player in an NPCForge game.
type Player struct {
	ID          uuid.UUID      `json:"id"`
	GameID      uuid.UUID      `json:"game_id"`
	ExternalID  string         `json:"external_id"`
	DisplayName string         `json:"display_name,omitempty"`
	Metadata    PlayerMetadata `json:"metadata,omitempty"`
	ConsentedAt *time.Time     `json:"consented_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PlayerRegisterRequest contains the fields to register a player.
type PlayerRegisterRequest struct {
	ExternalID  string         `json:"external_id"`
	DisplayName string         `json:"display_name,omitempty"`
	Metadata    PlayerMetadata `json:"metadata,omitempty"`
}

// PlayerUpdateRequest contains the mutable profile fields. Nil fields are
// left unchanged.
type PlayerUpdateRequest struct {
	DisplayName *string        `json:"display_name,omitempty"`
	Metadata    PlayerMetadata `json:"metadata,omitempty"`
}

// MaxPlayerListLimit caps list pagination.
const MaxPlayerListLimit int32 = 200

// PlayerListOptions controls pagination for listing players.
type PlayerListOptions struct {
	Limit  int32
	Offset int32
}

// playerResponse wraps a single player response.
type playerResponse struct {
	Player Player `json:"player"`
}

// playerListResponse wraps the player list response.
type playerListResponse struct {
	Players []Player `json:"players"`
}

// PlayersClient provides methods to manage players in a game.
// Player operations require a secret key (nf_sk_*) for authentication.
type PlayersClient struct {
	client *Client
}

func (c *PlayersClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: players client not initialized")
	}
	return nil
}

// Register creates a player keyed by your external identifier.
func (c *PlayersClient) Register(ctx context.Context, req PlayerRegisterRequest) (Player, error) {
	if err := c.ensureInitialized(); err != nil {
		return Player{}, err
	}
	if strings.TrimSpace(req.ExternalID) == "" {
		return Player{}, fmt.Errorf("sdk: external_id is required")
	}
	var payload playerResponse
	if err := c.client.sendAndDecode(ctx, http.MethodPost, routes.Players, req, &payload); err != nil {
		return Player{}, err
	}
	return payload.Player, nil
}

// Get fetches a player profile by ID.
func (c *PlayersClient) Get(ctx context.Context, id uuid.UUID) (Player, error) {
	if err := c.ensureInitialized(); err != nil {
		return Player{}, err
	}
	if id == uuid.Nil {
		return Player{}, fmt.Errorf("sdk: player_id is required")
	}
	var payload playerResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, "/players/"+id.String(), nil, &payload); err != nil {
		return Player{}, err
	}
	return payload.Player, nil
}

// Update patches a player profile.
func (c *PlayersClient) Update(ctx context.Context, id uuid.UUID, req PlayerUpdateRequest) (Player, error) {
	if err := c.ensureInitialized(); err != nil {
		return Player{}, err
	}
	if id == uuid.Nil {
		return Player{}, fmt.Errorf("sdk: player_id is required")
	}
	if req.DisplayName == nil && req.Metadata == nil {
		return Player{}, fmt.Errorf("sdk: at least one field to update is required")
	}
	var payload playerResponse
	if err := c.client.sendAndDecode(ctx, http.MethodPatch, "/players/"+id.String(), req, &payload); err != nil {
		return Player{}, err
	}
	return payload.Player, nil
}

// List returns players registered in the game.
func (c *PlayersClient) List(ctx context.Context, opts PlayerListOptions) ([]Player, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("sdk: limit and offset must be non-negative")
	}
	if opts.Limit > MaxPlayerListLimit {
		return nil, fmt.Errorf("sdk: limit exceeds maximum (%d)", MaxPlayerListLimit)
	}
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.FormatInt(int64(opts.Limit), 10))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.FormatInt(int64(opts.Offset), 10))
	}
	path := routes.Players
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var payload playerListResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Players, nil
}
