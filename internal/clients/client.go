package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backend/internal/domain"
)

const (
	getRetries   = 3
	retryBaseGap = 200 * time.Millisecond
)

// apiClient is the shared JSON-over-HTTPS plumbing for the booking, payment
// and cart backends. Amounts cross this boundary as whole-currency-unit
// integers.
type apiClient struct {
	baseURL string
	key     string
	http    *http.Client
}

func newAPIClient(baseURL, serviceKey string) apiClient {
	return apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     serviceKey,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c apiClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.InternalError{Msg: "failed to encode request", Err: err}
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return domain.InternalError{Msg: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.key != "" {
		req.Header.Set("X-Service-Key", c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.mapStatus(resp.StatusCode, method+" "+path, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return domain.InternalError{Msg: "failed to parse response from " + path, Err: err}
		}
	}
	return nil
}

// getJSON retries transient transport failures with bounded exponential
// backoff. Only used for reads; mutating calls never auto-retry.
func (c apiClient) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	gap := retryBaseGap
	for attempt := 0; attempt < getRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.NetworkError{Op: "GET " + path, Err: ctx.Err()}
			case <-time.After(gap):
			}
			gap *= 2
		}
		lastErr = c.doJSON(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil || !domain.IsNetwork(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c apiClient) mapStatus(status int, op string, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NotFoundError{Resource: msg}
	case status == http.StatusConflict:
		return domain.ConflictError{Msg: msg}
	case status >= 400 && status < 500:
		return domain.ValidationError{Msg: msg}
	default:
		return domain.InternalError{
			Msg: fmt.Sprintf("%s returned %d: %s", op, status, msg),
		}
	}
}
