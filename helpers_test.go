package sdk

import (
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    srv.URL,
		APIKey:     "nf_sk_test",
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("new test client: %v", err)
	}
	return client
}
