package sdk

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologHooksEmitResponsesAndMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		APIKey:     "nf_sk_test",
		HTTPClient: server.Client(),
		Telemetry:  ZerologHooks(logger),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	req, _ := client.newJSONRequest(context.Background(), http.MethodGet, "/players", nil)
	if _, err := client.send(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"message":"http_response"`) {
		t.Fatalf("expected http_response log line, got %s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Fatalf("expected status field, got %s", out)
	}
	if !strings.Contains(out, `"metric":"sdk_http_request_latency_ms"`) {
		t.Fatalf("expected latency metric line, got %s", out)
	}
}

func TestZerologHooksLogEntryLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	hooks := ZerologHooks(logger)

	hooks.OnLogEntry(context.Background(), LogEntry{
		Level:   LogLevelInfo,
		Message: "stream opened",
		Fields:  map[string]any{"npc_id": "blacksmith"},
	})
	hooks.OnLogEntry(context.Background(), LogEntry{
		Level:   LogLevelError,
		Message: "stream failed",
	})

	out := buf.String()
	if !strings.Contains(out, `"level":"info"`) || !strings.Contains(out, `"npc_id":"blacksmith"`) {
		t.Fatalf("expected info entry with fields, got %s", out)
	}
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "stream failed") {
		t.Fatalf("expected error entry, got %s", out)
	}
}
