package sdk

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

// chunkReader serves scripted byte segments one per Read call, then EOF or a
// configured error. It counts Close calls.
type chunkReader struct {
	segments [][]byte
	idx      int
	err      error
	closes   int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.idx >= len(r.segments) {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	seg := r.segments[r.idx]
	n := copy(p, seg)
	if n < len(seg) {
		r.segments[r.idx] = seg[n:]
	} else {
		r.idx++
	}
	return n, nil
}

func (r *chunkReader) Close() error {
	r.closes++
	return nil
}

func segment(payload string, size int) [][]byte {
	if size <= 0 {
		return [][]byte{[]byte(payload)}
	}
	var segs [][]byte
	data := []byte(payload)
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		segs = append(segs, data[:n])
		data = data[n:]
	}
	return segs
}

func drainDecoder(t *testing.T, d *sseDecoder) []StreamChunk {
	t.Helper()
	var chunks []StreamChunk
	for {
		chunk, ok, err := d.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !ok {
			return chunks
		}
		chunks = append(chunks, chunk)
	}
}

func contentChunk(s string) StreamChunk { return StreamChunk{Content: s} }

var terminalChunk = StreamChunk{Done: true}

func TestDecoderSplitInvariance(t *testing.T) {
	// Multi-byte content so per-byte segmentation splits codepoints mid-rune.
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"héllo \"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"世界\"}}]}\n\n" +
		"data: [DONE]\n\n"
	want := []StreamChunk{contentChunk("héllo "), contentChunk("世界"), terminalChunk}

	for _, size := range []int{0, 1, 2, 3, 7, 64} {
		reader := &chunkReader{segments: segment(payload, size)}
		got := drainDecoder(t, newSSEDecoder(reader))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("segment size %d: got %+v, want %+v", size, got, want)
		}
		if reader.closes != 1 {
			t.Fatalf("segment size %d: reader closed %d times", size, reader.closes)
		}
	}
}

func TestDecoderDoneSentinel(t *testing.T) {
	for name, payload := range map[string]string{
		"trailing newline": "data: [DONE]\n\n",
		"no newline":       "data: [DONE]",
	} {
		t.Run(name, func(t *testing.T) {
			reader := &chunkReader{segments: segment(payload, 0)}
			got := drainDecoder(t, newSSEDecoder(reader))
			if !reflect.DeepEqual(got, []StreamChunk{terminalChunk}) {
				t.Fatalf("got %+v, want single terminal chunk", got)
			}
			if reader.closes != 1 {
				t.Fatalf("reader closed %d times", reader.closes)
			}
		})
	}
}

func TestDecoderEmptyDeltaYieldsNothing(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"\"}}]}\n" +
		"data: {\"choices\":[{\"delta\":{}}]}\n"
	got := drainDecoder(t, newSSEDecoder(&chunkReader{segments: segment(payload, 0)}))
	if len(got) != 0 {
		t.Fatalf("expected no chunks, got %+v", got)
	}
}

func TestDecoderContentWithFinishReason(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"bye\"},\"finish_reason\":\"stop\"}]}\n"
	got := drainDecoder(t, newSSEDecoder(&chunkReader{segments: segment(payload, 0)}))
	want := []StreamChunk{contentChunk("bye"), terminalChunk}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecoderNullFinishReasonIsNotTerminal(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"},\"finish_reason\":null}]}\n"
	got := drainDecoder(t, newSSEDecoder(&chunkReader{segments: segment(payload, 0)}))
	if !reflect.DeepEqual(got, []StreamChunk{contentChunk("hi")}) {
		t.Fatalf("got %+v", got)
	}
}

func TestDecoderMalformedJSONSkipped(t *testing.T) {
	payload := "data: {not json\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n" +
		"data: [DONE]\n"
	got := drainDecoder(t, newSSEDecoder(&chunkReader{segments: segment(payload, 0)}))
	want := []StreamChunk{contentChunk("ok"), terminalChunk}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecoderIgnoresNonDataLines(t *testing.T) {
	payload := ": keep-alive\n" +
		"event: message\n" +
		"retry: 1000\n" +
		"data:{\"choices\":[{\"delta\":{\"content\":\"nope\"}}]}\n" + // missing space after colon
		"\n"
	got := drainDecoder(t, newSSEDecoder(&chunkReader{segments: segment(payload, 0)}))
	if len(got) != 0 {
		t.Fatalf("expected no chunks, got %+v", got)
	}
}

func TestDecoderEmptyBody(t *testing.T) {
	reader := &chunkReader{}
	got := drainDecoder(t, newSSEDecoder(reader))
	if len(got) != 0 {
		t.Fatalf("expected no chunks, got %+v", got)
	}
	if reader.closes != 1 {
		t.Fatalf("reader closed %d times", reader.closes)
	}
}

func TestDecoderDanglingPartialLineDiscarded(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\ndata: {\"choices\""
	got := drainDecoder(t, newSSEDecoder(&chunkReader{segments: segment(payload, 0)}))
	if !reflect.DeepEqual(got, []StreamChunk{contentChunk("a")}) {
		t.Fatalf("got %+v", got)
	}
}

func TestDecoderStopsAfterSentinel(t *testing.T) {
	payload := "data: [DONE]\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"late\"}}]}\n"
	reader := &chunkReader{segments: segment(payload, 0)}
	got := drainDecoder(t, newSSEDecoder(reader))
	if !reflect.DeepEqual(got, []StreamChunk{terminalChunk}) {
		t.Fatalf("frames after the sentinel must not be emitted, got %+v", got)
	}
	if reader.closes != 1 {
		t.Fatalf("reader closed %d times", reader.closes)
	}
}

func TestDecoderAbandonReleasesReader(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n" +
		"data: [DONE]\n"
	reader := &chunkReader{segments: segment(payload, 8)}
	dec := newSSEDecoder(reader)
	if _, ok, err := dec.Next(); err != nil || !ok {
		t.Fatalf("first chunk: ok=%v err=%v", ok, err)
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if reader.closes != 1 {
		t.Fatalf("reader closed %d times, want exactly once", reader.closes)
	}
}

func TestDecoderReadErrorPropagatesAfterRelease(t *testing.T) {
	sentinel := errors.New("connection reset")
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n"
	reader := &chunkReader{segments: segment(payload, 0), err: sentinel}
	dec := newSSEDecoder(reader)

	chunk, ok, err := dec.Next()
	if err != nil || !ok || chunk.Content != "a" {
		t.Fatalf("first chunk: %+v ok=%v err=%v", chunk, ok, err)
	}
	if _, _, err := dec.Next(); !errors.Is(err, sentinel) {
		t.Fatalf("expected reader error, got %v", err)
	}
	if reader.closes != 1 {
		t.Fatalf("reader closed %d times before error surfaced", reader.closes)
	}
	// The sequence stays terminated afterwards.
	if _, ok, err := dec.Next(); ok || err != nil {
		t.Fatalf("expected exhausted sequence, ok=%v err=%v", ok, err)
	}
}

func TestDecoderTwoReadExample(t *testing.T) {
	reader := &chunkReader{segments: [][]byte{
		[]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n"),
		[]byte("data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\ndata: [DONE]\n\n"),
	}}
	got := drainDecoder(t, newSSEDecoder(reader))
	want := []StreamChunk{contentChunk("Hel"), contentChunk("lo"), terminalChunk}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
