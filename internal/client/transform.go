package client

import (
	"context"
	"io"
	"net/http"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
)

type TransformInput struct {
	// Width and Height in pixels; zero leaves the dimension out.
	Width  int
	Height int
	// OutputPath, when set, receives the transformed file.
	OutputPath string
	// Store, when set, asks the API to copy the transformed file to S3.
	Store *model.StoreTarget
}

type TransformOutput struct {
	Status   model.Status
	APIError *model.APIError
	// Body streams the transformed file; nil when APIError is set. When
	// OutputPath was given the stream has already been consumed and reads
	// return io.EOF. The caller must close it.
	Body    io.ReadCloser
	Written int64
}

// Cover scales the image and crops it so that the result is exactly
// width x height. Both dimensions are expected.
func (c *Client) Cover(ctx context.Context, result *model.CompressionResult, in TransformInput) (*TransformOutput, error) {
	return c.Transform(ctx, result, model.ResizeCover, in)
}

// Fit scales the image down so that it fits within width x height. Both
// dimensions are expected.
func (c *Client) Fit(ctx context.Context, result *model.CompressionResult, in TransformInput) (*TransformOutput, error) {
	return c.Transform(ctx, result, model.ResizeFit, in)
}

// Scale scales the image down proportionally. Exactly one of width and
// height is expected.
func (c *Client) Scale(ctx context.Context, result *model.CompressionResult, in TransformInput) (*TransformOutput, error) {
	return c.Transform(ctx, result, model.ResizeScale, in)
}

// Transform applies method to a previous upload. The resize block is only sent
// when at least one dimension is set; an empty method sends none at all.
func (c *Client) Transform(ctx context.Context, result *model.CompressionResult, method model.ResizeMethod, in TransformInput) (*TransformOutput, error) {
	url := result.ResultURL()
	if url == "" {
		return nil, ErrNoResultURL
	}

	opts := &model.TransformOptions{Store: in.Store}
	if method != "" && (in.Width != 0 || in.Height != 0) {
		opts.Resize = &model.Resize{Method: method, Width: in.Width, Height: in.Height}
	}

	resp, err := c.do(ctx, http.MethodPost, url, nil, opts)
	if err != nil {
		return nil, err
	}
	out := &TransformOutput{Status: resp.Status, APIError: resp.APIError}
	if resp.APIError != nil {
		return out, nil
	}

	if in.OutputPath == "" {
		out.Body = resp.Body
		return out, nil
	}

	n, err := drainToFile(resp.Body, in.OutputPath)
	_ = resp.Close()
	if err != nil {
		return out, err
	}
	logger.Infof(ctx, "✅  saved %d bytes of %s result to %q", n, method, in.OutputPath)
	out.Written = n
	out.Body = http.NoBody
	return out, nil
}

// Store asks the API to persist the result to target. The answer body is
// discarded.
func (c *Client) Store(ctx context.Context, result *model.CompressionResult, target *model.StoreTarget) (*Response, error) {
	url := result.ResultURL()
	if url == "" {
		return nil, ErrNoResultURL
	}
	resp, err := c.do(ctx, http.MethodPost, url, nil, &model.TransformOptions{Store: target})
	if err != nil {
		return nil, err
	}
	_ = resp.Close()
	resp.Body = nil
	return resp, nil
}
