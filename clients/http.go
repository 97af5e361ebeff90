package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds every upstream call. The services are assumed
// best-effort, single attempt; a timeout surfaces as a NetworkError.
const defaultTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// doJSON performs one JSON round trip against an upstream service and
// classifies the outcome into the shared error taxonomy. A nil out skips
// decoding, which is how mutation responses are deliberately ignored:
// their shapes are not authoritative.
func doJSON(ctx context.Context, client *http.Client, op, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: op, ID: url}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep a short tail of the body for the log line.
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ServerError{Op: op, Status: resp.StatusCode, Body: string(tail)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{Op: op, Status: resp.StatusCode, Body: "unparseable response body"}
	}
	return nil
}
