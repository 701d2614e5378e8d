package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxStateTTLSeconds is the maximum allowed TTL for a state entry (1 year).
const MaxStateTTLSeconds int64 = 31536000

// MaxStateListLimit caps list pagination.
const MaxStateListLimit int32 = 100

// StateEntry is one stored piece of per-player NPC memory.
type StateEntry struct {
	PlayerID  uuid.UUID       `json:"player_id"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StatePutRequest contains the fields to store a state entry.
type StatePutRequest struct {
	PlayerID   uuid.UUID       `json:"-"`
	Key        string          `json:"key"`
	Value      json.RawMessage `json:"value"`
	TTLSeconds *int64          `json:"ttl_seconds,omitempty"`
}

// StateListOptions controls pagination for listing a player's state entries.
type StateListOptions struct {
	Limit  int32
	Offset int32
}

type stateEntryResponse struct {
	Entry StateEntry `json:"entry"`
}

type stateListResponse struct {
	Entries []StateEntry `json:"entries"`
}

// StateClient provides methods for managing per-player state storage.
type StateClient struct {
	client *Client
}

func (c *StateClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: state client not initialized")
	}
	return nil
}

func statePath(playerID uuid.UUID) string {
	return "/players/" + playerID.String() + "/state"
}

// Put stores a state entry for a player, replacing any previous value.
func (c *StateClient) Put(ctx context.Context, req StatePutRequest) (StateEntry, error) {
	if err := c.ensureInitialized(); err != nil {
		return StateEntry{}, err
	}
	if req.PlayerID == uuid.Nil {
		return StateEntry{}, fmt.Errorf("sdk: player_id is required")
	}
	if strings.TrimSpace(req.Key) == "" {
		return StateEntry{}, fmt.Errorf("sdk: key is required")
	}
	if req.TTLSeconds != nil {
		if *req.TTLSeconds <= 0 {
			return StateEntry{}, fmt.Errorf("sdk: ttl_seconds must be positive")
		}
		if *req.TTLSeconds > MaxStateTTLSeconds {
			return StateEntry{}, fmt.Errorf("sdk: ttl_seconds exceeds maximum (1 year)")
		}
	}
	var payload stateEntryResponse
	if err := c.client.sendAndDecode(ctx, http.MethodPut, statePath(req.PlayerID), req, &payload); err != nil {
		return StateEntry{}, err
	}
	return payload.Entry, nil
}

// Get reads one state entry.
func (c *StateClient) Get(ctx context.Context, playerID uuid.UUID, key string) (StateEntry, error) {
	if err := c.ensureInitialized(); err != nil {
		return StateEntry{}, err
	}
	if playerID == uuid.Nil {
		return StateEntry{}, fmt.Errorf("sdk: player_id is required")
	}
	if strings.TrimSpace(key) == "" {
		return StateEntry{}, fmt.Errorf("sdk: key is required")
	}
	path := statePath(playerID) + "/" + url.PathEscape(key)
	var payload stateEntryResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return StateEntry{}, err
	}
	return payload.Entry, nil
}

// List returns state entries for a player.
func (c *StateClient) List(ctx context.Context, playerID uuid.UUID, opts StateListOptions) ([]StateEntry, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if playerID == uuid.Nil {
		return nil, fmt.Errorf("sdk: player_id is required")
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("sdk: limit and offset must be non-negative")
	}
	if opts.Limit > MaxStateListLimit {
		return nil, fmt.Errorf("sdk: limit exceeds maximum (%d)", MaxStateListLimit)
	}
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.FormatInt(int64(opts.Limit), 10))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.FormatInt(int64(opts.Offset), 10))
	}
	path := statePath(playerID)
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var payload stateListResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Entries, nil
}

// Delete removes a state entry.
func (c *StateClient) Delete(ctx context.Context, playerID uuid.UUID, key string) error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}
	if playerID == uuid.Nil {
		return fmt.Errorf("sdk: player_id is required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("sdk: key is required")
	}
	path := statePath(playerID) + "/" + url.PathEscape(key)
	return c.client.sendAndDecode(ctx, http.MethodDelete, path, nil, nil)
}
