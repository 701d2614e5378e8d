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

	"github.com/npcforge/npcforge-go/routes"
)

// GameEvent is a game-world occurrence the platform holds for NPC reactions.
type GameEvent struct {
	ID         uuid.UUID       `json:"id"`
	PlayerID   uuid.UUID       `json:"player_id"`
	NPCID      string          `json:"npc_id,omitempty"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EventIngest contains the fields to push one game-world event.
type EventIngest struct {
	PlayerID   uuid.UUID       `json:"player_id"`
	NPCID      string          `json:"npc_id,omitempty"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}

// MaxEventPollLimit caps a single poll.
const MaxEventPollLimit int32 = 100

// EventPollOptions filters pending events.
type EventPollOptions struct {
	PlayerID uuid.UUID
	NPCID    string
	Limit    int32
}

type eventListResponse struct {
	Events []GameEvent `json:"events"`
}

type eventIngestResponse struct {
	Accepted int `json:"accepted"`
}

// EventsClient provides access to game-event endpoints.
type EventsClient struct {
	client *Client
}

func (c *EventsClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: events client not initialized")
	}
	return nil
}

// Poll returns pending events. Events stay pending until acknowledged.
func (c *EventsClient) Poll(ctx context.Context, opts EventPollOptions) ([]GameEvent, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	if opts.Limit < 0 {
		return nil, fmt.Errorf("sdk: limit must be non-negative")
	}
	if opts.Limit > MaxEventPollLimit {
		return nil, fmt.Errorf("sdk: limit exceeds maximum (%d)", MaxEventPollLimit)
	}
	params := url.Values{}
	if opts.PlayerID != uuid.Nil {
		params.Set("player_id", opts.PlayerID.String())
	}
	if strings.TrimSpace(opts.NPCID) != "" {
		params.Set("npc_id", strings.TrimSpace(opts.NPCID))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.FormatInt(int64(opts.Limit), 10))
	}
	path := routes.Events
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var payload eventListResponse
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}

// Ack acknowledges delivered events so they are not re-polled.
func (c *EventsClient) Ack(ctx context.Context, ids []uuid.UUID) error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("sdk: at least one event id is required")
	}
	for _, id := range ids {
		if id == uuid.Nil {
			return fmt.Errorf("sdk: event ids must be non-nil")
		}
	}
	body := struct {
		EventIDs []uuid.UUID `json:"event_ids"`
	}{EventIDs: ids}
	return c.client.sendAndDecode(ctx, http.MethodPost, routes.EventsAck, body, nil)
}

// Ingest pushes game-world events to the platform and returns how many the
// server accepted.
func (c *EventsClient) Ingest(ctx context.Context, events []EventIngest) (int, error) {
	if err := c.ensureInitialized(); err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, fmt.Errorf("sdk: at least one event is required")
	}
	for i, ev := range events {
		if ev.PlayerID == uuid.Nil {
			return 0, fmt.Errorf("sdk: events[%d].player_id is required", i)
		}
		if strings.TrimSpace(ev.Type) == "" {
			return 0, fmt.Errorf("sdk: events[%d].type is required", i)
		}
	}
	body := struct {
		Events []EventIngest `json:"events"`
	}{Events: events}
	var payload eventIngestResponse
	if err := c.client.sendAndDecode(ctx, http.MethodPost, routes.Events, body, &payload); err != nil {
		return 0, err
	}
	return payload.Accepted, nil
}
