// Package testutil provides helpers for SDK tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"time"
)

// SSEStep describes raw bytes to emit with an optional delay. Steps are
// written verbatim and flushed individually, so tests control exactly how the
// stream is segmented across reads.
type SSEStep struct {
	Delay time.Duration
	Data  string
}

// SSEServerConfig configures the SSE test server.
type SSEServerConfig struct {
	Status     int
	Headers    map[string]string
	FinalDelay time.Duration
}

// NewSSEServer returns an httptest server that streams the configured steps.
func NewSSEServer(steps []SSEStep, cfg SSEServerConfig) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status := cfg.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for k, v := range cfg.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		flusher, _ := w.(http.Flusher)
		for _, step := range steps {
			if step.Delay > 0 {
				time.Sleep(step.Delay)
			}
			_, _ = w.Write([]byte(step.Data))
			if flusher != nil {
				flusher.Flush()
			}
		}
		if cfg.FinalDelay > 0 {
			time.Sleep(cfg.FinalDelay)
		}
	}))
}
