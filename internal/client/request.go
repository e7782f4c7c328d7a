package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
)

// maxErrorBody caps how much of a non-2xx body is read to decode the error.
const maxErrorBody = 64 << 10

// Response is the outcome of one exchange. Exactly one of Body and APIError
// is set. A non-nil Body must be closed by the caller.
type Response struct {
	Status   model.Status
	Body     io.ReadCloser
	APIError *model.APIError
}

// Close releases the body if any.
func (r *Response) Close() error {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// do performs a single request. payload, when set, is sent as the raw body;
// otherwise options, when set, is sent as JSON. A non-2xx answer is not a Go
// error: it comes back as Response.APIError with the body already consumed.
func (c *Client) do(ctx context.Context, method, url string, payload []byte, options *model.TransformOptions) (*Response, error) {
	if url == "" {
		url = c.endpoint
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case payload != nil:
		body = bytes.NewReader(payload)
		contentType = "application/octet-stream"
	case options != nil:
		raw, err := json.Marshal(options)
		if err != nil {
			return nil, fmt.Errorf("encode options: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logger.Debugf(ctx, "sending %s request to %s...", method, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, url, err)
	}

	status := model.StatusFromResponse(resp)
	if status.OK() {
		return &Response{Status: status, Body: resp.Body}, nil
	}

	defer func() { _ = resp.Body.Close() }()
	apiErr := &model.APIError{Status: status}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var doc struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(raw) > 0 && json.Unmarshal(raw, &doc) == nil {
		apiErr.Err = doc.Error
		apiErr.Message = doc.Message
	}

	logger.Warnf(ctx, "⚠️  %s %s answered %s", method, url, status)
	return &Response{Status: status, APIError: apiErr}, nil
}
