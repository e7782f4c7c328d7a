package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
)

type ShrinkInput struct {
	// InputPath is the file to upload. Ignored by ShrinkBytes.
	InputPath string
	// OutputPath, when set, receives the compressed file.
	OutputPath string
	// Store, when set, asks the API to copy the result to S3.
	Store *model.StoreTarget
}

type ShrinkOutput struct {
	// Result is nil only when the upload itself was answered with a non-2xx.
	Result *model.CompressionResult
	// Status is the outcome of the upload request.
	Status model.Status
	// APIError is set when the upload was rejected.
	APIError *model.APIError
	// StoreStatus is the outcome of the store request, when one was made.
	StoreStatus *model.Status
	// StoreError is set when the store request was rejected.
	StoreError *model.APIError
	// DownloadStatus is the outcome of the download, when one was made.
	DownloadStatus *model.Status
	// DownloadError is set when the download was rejected.
	DownloadError *model.APIError
	// Written is the number of bytes written to OutputPath.
	Written int64
}

// Shrink uploads the file at in.InputPath and returns the compression result.
func (c *Client) Shrink(ctx context.Context, in ShrinkInput) (*ShrinkOutput, error) {
	data, err := os.ReadFile(in.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return c.ShrinkBytes(ctx, data, in)
}

// ShrinkBytes uploads data as-is and returns the compression result.
//
// When the result has no output URL nothing else is requested. Otherwise the
// store request (in.Store) and the download (in.OutputPath) follow, in that
// order; their outcomes are reported next to the result, never merged into it.
func (c *Client) ShrinkBytes(ctx context.Context, data []byte, in ShrinkInput) (*ShrinkOutput, error) {
	if data == nil {
		data = []byte{}
	}
	logger.Infof(ctx, "uploading %d bytes for compression...", len(data))

	resp, err := c.do(ctx, http.MethodPost, c.endpoint, data, nil)
	if err != nil {
		return nil, err
	}
	out := &ShrinkOutput{Status: resp.Status, APIError: resp.APIError}
	if resp.APIError != nil {
		return out, nil
	}

	raw, err := drainToString(resp.Body)
	_ = resp.Close()
	if err != nil {
		return nil, err
	}

	var result model.CompressionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	out.Result = &result

	if result.ResultURL() == "" {
		logger.Warnf(ctx, "⚠️  upload answered without output url: %s", result.FailureReason())
		return out, nil
	}
	logger.Infof(ctx, "✅  compressed %d → %d bytes (ratio %.2f)", result.Input.Size, result.Output.Size, result.Output.Ratio)

	if in.Store != nil {
		storeResp, err := c.Store(ctx, &result, in.Store)
		if err != nil {
			return out, err
		}
		out.StoreStatus = &storeResp.Status
		out.StoreError = storeResp.APIError
	}

	if in.OutputPath != "" {
		dl, err := c.Download(ctx, result.Output.URL)
		if err != nil {
			return out, err
		}
		out.DownloadStatus = &dl.Status
		out.DownloadError = dl.APIError
		if dl.APIError == nil {
			n, err := drainToFile(dl.Body, in.OutputPath)
			_ = dl.Close()
			if err != nil {
				return out, err
			}
			out.Written = n
			logger.Infof(ctx, "✅  saved %d bytes to %q", n, in.OutputPath)
		}
	}

	return out, nil
}

// Download fetches the file behind a result URL. The caller owns the body.
func (c *Client) Download(ctx context.Context, url string) (*Response, error) {
	if url == "" {
		return nil, ErrNoResultURL
	}
	return c.do(ctx, http.MethodGet, url, nil, nil)
}
