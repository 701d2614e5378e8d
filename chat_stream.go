package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// StreamChunk is one increment of NPC dialogue from a streaming completion.
// The terminal chunk has Done true and empty Content.
type StreamChunk struct {
	Content string
	Done    bool
}

// ChatStream yields decoded chunks from a streaming chat completion. It is
// pull-based and single-consumption: once exhausted or closed it cannot be
// replayed.
type ChatStream struct {
	RequestID string

	ctx       context.Context
	decoder   *sseDecoder
	telemetry TelemetryHooks
}

// Next advances the stream, returning false when the stream is complete.
// Calls are pull-based: no buffering beyond the current SSE frame, so slow
// consumers backpressure the server naturally.
func (s *ChatStream) Next() (StreamChunk, bool, error) {
	chunk, ok, err := s.decoder.Next()
	if err != nil || !ok {
		return StreamChunk{}, ok, err
	}
	if s.telemetry.OnStreamChunk != nil {
		s.telemetry.OnStreamChunk(s.ctx, chunk)
	}
	s.telemetry.metric(s.ctx, "sdk_stream_chunks_total", 1, map[string]string{
		"done": boolLabel(chunk.Done),
	})
	return chunk, true, nil
}

// Close terminates the underlying stream. Safe to call more than once.
func (s *ChatStream) Close() error {
	return s.decoder.Close()
}

// Collect drains the stream into the aggregated dialogue text. It respects
// context cancellation and closes the stream when the call returns.
func (s *ChatStream) Collect(ctx context.Context) (string, error) {
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = s.Close() }()

	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		chunk, ok, err := s.Next()
		if err != nil {
			return "", err
		}
		if !ok || chunk.Done {
			break
		}
		builder.WriteString(chunk.Content)
	}
	return builder.String(), nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

const dataPrefix = "data: "
const doneSentinel = "[DONE]"

// completionFrame is the chat-completion-shaped SSE payload:
// {"choices":[{"delta":{"content":"..."},"finish_reason":null|"stop"}]}.
type completionFrame struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

// sseDecoder incrementally decodes an SSE-framed response body into
// StreamChunks. The line buffer holds raw bytes and lines are interpreted
// only once complete, so the emitted sequence is invariant under arbitrary
// byte segmentation of the input, including splits inside multi-byte UTF-8
// codepoints.
type sseDecoder struct {
	body    io.ReadCloser
	buf     []byte
	readBuf []byte
	pending []StreamChunk
	done    bool
	closed  bool
}

func newSSEDecoder(body io.ReadCloser) *sseDecoder {
	d := &sseDecoder{body: body, readBuf: make([]byte, 4096)}
	if body == nil {
		d.done = true
		d.closed = true
	}
	return d
}

// Next returns the next decoded chunk. After a terminal chunk, EOF, or a read
// error, subsequent calls return ok=false. The underlying body is closed
// exactly once on every exit path; a read error is surfaced only after the
// body has been released.
func (d *sseDecoder) Next() (StreamChunk, bool, error) {
	for {
		if len(d.pending) > 0 {
			chunk := d.pending[0]
			d.pending = d.pending[1:]
			return chunk, true, nil
		}
		if d.done {
			return StreamChunk{}, false, nil
		}
		n, err := d.body.Read(d.readBuf)
		if n > 0 {
			d.buf = append(d.buf, d.readBuf[:n]...)
			d.drainLines()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !d.done {
					d.flushTail()
					d.done = true
					_ = d.Close()
				}
				continue
			}
			d.done = true
			_ = d.Close()
			return StreamChunk{}, false, err
		}
	}
}

// Close releases the underlying body. Idempotent.
func (d *sseDecoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.body.Close()
}

// drainLines processes every complete line in the buffer, keeping the
// trailing unterminated remainder for the next read. Processing stops at the
// first terminal chunk: frames after [DONE] or a finish_reason are not read.
func (d *sseDecoder) drainLines() {
	for !d.done {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			return
		}
		line := d.buf[:idx]
		d.buf = d.buf[idx+1:]
		d.handleLine(line)
	}
}

func (d *sseDecoder) handleLine(raw []byte) {
	line := bytes.TrimSpace(raw)
	if len(line) == 0 {
		// SSE blank-line frame separators carry no content here.
		return
	}
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		// Comments, event-field lines, keep-alive pings.
		return
	}
	payload := line[len(dataPrefix):]
	if string(payload) == doneSentinel {
		d.terminate()
		return
	}
	var frame completionFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		// Malformed data lines are noise, not stream corruption.
		return
	}
	if len(frame.Choices) == 0 {
		return
	}
	choice := frame.Choices[0]
	if choice.Delta.Content != "" {
		d.pending = append(d.pending, StreamChunk{Content: choice.Delta.Content})
	}
	// finish_reason is an independent terminal trigger; a frame carrying both
	// content and a finish reason yields the content chunk first.
	if choice.FinishReason != nil && *choice.FinishReason != "" {
		d.terminate()
	}
}

func (d *sseDecoder) terminate() {
	d.pending = append(d.pending, StreamChunk{Done: true})
	d.done = true
	_ = d.Close()
}

// flushTail inspects the dangling partial line left at end-of-data. A
// completed [DONE] frame missing its trailing newline still terminates the
// sequence; anything else is discarded without error.
func (d *sseDecoder) flushTail() {
	line := bytes.TrimSpace(d.buf)
	d.buf = nil
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return
	}
	if string(line[len(dataPrefix):]) == doneSentinel {
		d.pending = append(d.pending, StreamChunk{Done: true})
	}
}
