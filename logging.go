package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ZerologHooks adapts a zerolog logger into TelemetryHooks so SDK log entries,
// metrics, and HTTP latencies land in the caller's structured log stream.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, err := sdk.NewClient(sdk.Config{
//	    APIKey:    key,
//	    Telemetry: sdk.ZerologHooks(logger),
//	})
func ZerologHooks(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnHTTPResponse: func(_ context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			ev := logger.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Dur("latency", latency)
			if resp != nil {
				ev = ev.Int("status", resp.StatusCode)
			}
			if err != nil {
				ev = ev.Err(err)
			}
			ev.Msg("http_response")
		},
		OnLogEntry: func(_ context.Context, entry LogEntry) {
			ev := logger.Info()
			if entry.Level == LogLevelError {
				ev = logger.Error()
			}
			ev.Fields(entry.Fields).Msg(entry.Message)
		},
		OnMetric: func(_ context.Context, metric Metric) {
			ev := logger.Debug().Str("metric", metric.Name).Float64("value", metric.Value)
			for k, v := range metric.Labels {
				ev = ev.Str(k, v)
			}
			ev.Msg("sdk_metric")
		},
	}
}
