package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
)

type staticDoer struct {
	status    int
	body      string
	lastReq   *http.Request
}

func (d *staticDoer) Do(req *http.Request) (*http.Response, error) {
	d.lastReq = req
	status := d.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(d.body)),
		Header:     make(http.Header),
	}, nil
}

func TestGetJSON(t *testing.T) {
	doer := &staticDoer{body: `{"symbol":"XYZ"}`}
	c := NewClient(doer, "https://example.com/v1/")
	c.SetUserAgent("test-ua")

	var out struct {
		Symbol string `json:"symbol"`
	}
	q := url.Values{"apikey": {"k"}}
	if err := c.GetJSON(context.Background(), "/marketdata/chains", q, &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if out.Symbol != "XYZ" {
		t.Errorf("unexpected symbol: %s", out.Symbol)
	}
	if got := doer.lastReq.URL.String(); got != "https://example.com/v1/marketdata/chains?apikey=k" {
		t.Errorf("unexpected URL: %s", got)
	}
	if got := doer.lastReq.Header.Get("User-Agent"); got != "test-ua" {
		t.Errorf("unexpected user agent: %s", got)
	}
}

func TestGetHTTPError(t *testing.T) {
	doer := &staticDoer{status: http.StatusTooManyRequests, body: "slow down"}
	c := NewClient(doer, "https://example.com")

	_, err := c.Get(context.Background(), "/x", nil)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusTooManyRequests || httpErr.Body != "slow down" {
		t.Errorf("unexpected error: %v", httpErr)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	doer := &staticDoer{body: `not json`}
	c := NewClient(doer, "https://example.com")

	var out map[string]any
	if err := c.GetJSON(context.Background(), "/x", nil, &out); err == nil {
		t.Fatal("expected decode error")
	}
}
