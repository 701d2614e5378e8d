package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/npcforge/npcforge-go/headers"
	"github.com/npcforge/npcforge-go/routes"
)

// ChatMessage is one entry in an NPC conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// ChatRequest mirrors the /chat/completions JSON contract using typed enums.
type ChatRequest struct {
	NPCID       string
	Messages    []ChatMessage
	Tier        QualityTier
	Temperature *float64
	MaxTokens   int64
	Metadata    map[string]string
}

// Validate returns an error when required fields are missing.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.NPCID) == "" {
		return fmt.Errorf("npc_id is required")
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("at least one message is required")
	}
	return nil
}

type chatRequestPayload struct {
	NPCID       string            `json:"npc_id"`
	Messages    []ChatMessage     `json:"messages"`
	Tier        QualityTier       `json:"tier,omitempty"`
	Temperature *float64          `json:"temperature,omitempty"`
	MaxTokens   int64             `json:"max_tokens,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Stream      bool              `json:"stream,omitempty"`
}

func newChatRequestPayload(req ChatRequest, stream bool) chatRequestPayload {
	payload := chatRequestPayload{
		NPCID:       strings.TrimSpace(req.NPCID),
		Messages:    req.Messages,
		Tier:        req.Tier,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}
	if len(req.Metadata) > 0 {
		payload.Metadata = req.Metadata
	}
	return payload
}

// Usage summarizes token consumption for a completion.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// ChatResponse wraps the server response and surfaces the echoed request ID.
type ChatResponse struct {
	ID           string       `json:"id"`
	NPCID        string       `json:"npc_id"`
	Content      string       `json:"content"`
	FinishReason FinishReason `json:"finish_reason,omitempty"`
	Tier         QualityTier  `json:"tier,omitempty"`
	Usage        Usage        `json:"usage"`
	RequestID    string       `json:"-"`
}

// CallOption customizes a single outgoing request (headers, player attribution).
type CallOption func(*callOptions)

type callOptions struct {
	headers http.Header
}

// WithRequestID sets the X-NPCForge-Request-Id header for the request.
func WithRequestID(requestID string) CallOption {
	return WithHeader(headers.RequestID, requestID)
}

// WithPlayer overrides the player attribution header for this call.
func WithPlayer(playerID string) CallOption {
	return WithHeader(headers.PlayerID, playerID)
}

// WithHeader attaches an arbitrary header to the underlying HTTP request.
func WithHeader(key, value string) CallOption {
	return func(opts *callOptions) {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
			return
		}
		if opts.headers == nil {
			opts.headers = make(http.Header)
		}
		opts.headers.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

func applyCallOptions(req *http.Request, options []CallOption) {
	if len(options) == 0 {
		return
	}
	cfg := callOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	for key, values := range cfg.headers {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
}

// ChatClient proxies NPC chat completions through the platform API.
type ChatClient struct {
	client *Client
}

// Complete performs a blocking completion and returns the full response.
func (c *ChatClient) Complete(ctx context.Context, req ChatRequest, options ...CallOption) (*ChatResponse, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("sdk: chat client not initialized")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("sdk: %w", err)
	}
	httpReq, err := c.client.newJSONRequest(ctx, http.MethodPost, routes.ChatCompletions, newChatRequestPayload(req, false))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	applyCallOptions(httpReq, options)
	resp, err := c.client.send(httpReq)
	if err != nil {
		c.client.telemetry.log(ctx, LogLevelError, "chat_complete_failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	var payload ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	payload.RequestID = requestIDFromHeaders(resp.Header)
	return &payload, nil
}

// Stream opens a streaming SSE connection for a chat completion. The returned
// stream must be closed; abandoning it early still releases the connection.
func (c *ChatClient) Stream(ctx context.Context, req ChatRequest, options ...CallOption) (*ChatStream, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("sdk: chat client not initialized")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("sdk: %w", err)
	}
	httpReq, err := c.client.newJSONRequest(ctx, http.MethodPost, routes.ChatCompletions, newChatRequestPayload(req, true))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	applyCallOptions(httpReq, options)
	resp, err := c.client.send(httpReq)
	if err != nil {
		return nil, err
	}
	return &ChatStream{
		RequestID: requestIDFromHeaders(resp.Header),
		ctx:       ctx,
		decoder:   newSSEDecoder(resp.Body),
		telemetry: c.client.telemetry,
	}, nil
}

func requestIDFromHeaders(h http.Header) string {
	if h == nil {
		return ""
	}
	return h.Get(headers.RequestID)
}
