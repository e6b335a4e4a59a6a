package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/hotmess/internal/errors"
	"github.com/diogo/hotmess/internal/models"
)

const (
	// maxResponseBytes bounds a reply body. Larger bodies are rejected
	// rather than cut short.
	maxResponseBytes = 1 << 20
	// maxErrorBodyBytes bounds the body kept for diagnostics on failure.
	maxErrorBodyBytes = 4096
)

// Send posts one message to the chat endpoint and extracts the reply.
//
// found is false when the backend answered 2xx with valid JSON that carries
// no reply field. Every other failure is returned as a typed error from
// internal/errors.
func (c *Client) Send(ctx context.Context, message string) (string, bool, error) {
	if message == "" {
		return "", false, apierrors.ErrEmptyMessage
	}

	if c.IsClosed() {
		return "", false, apierrors.ErrClientClosed
	}

	endpoint := c.Endpoint()

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", false, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, apierrors.NewNetworkErrorWithEndpoint("send message", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", false, apierrors.NewAPIError(resp.StatusCode, endpoint, "unexpected status").
			WithBody(string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", false, apierrors.NewNetworkErrorWithEndpoint("read response", endpoint, err)
	}
	if len(body) > maxResponseBytes {
		return "", false, fmt.Errorf("%w: more than %d bytes from %s", apierrors.ErrResponseTooLarge, maxResponseBytes, endpoint)
	}

	return ExtractReply(body)
}
