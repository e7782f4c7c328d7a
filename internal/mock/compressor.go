package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	"github.com/fhuszti/way2enjoy-go/internal/model"
)

// Compressor implements port.Compressor for tests.
type Compressor struct {
	// stored values
	ShrinkOut    *client.ShrinkOutput
	TransformOut *client.TransformOutput
	DownloadOut  *client.Response
	// Body is served by Transform and Download when their outputs are unset.
	Body []byte

	// captured inputs
	ShrinkData      []byte
	TransformMethod model.ResizeMethod
	TransformIn     client.TransformInput
	DownloadURL     string

	// errors
	ShrinkErr    error
	TransformErr error
	DownloadErr  error

	// call flags
	ShrinkCalled    bool
	TransformCalled bool
	DownloadCalled  bool
}

func (m *Compressor) ShrinkBytes(ctx context.Context, data []byte, in client.ShrinkInput) (*client.ShrinkOutput, error) {
	m.ShrinkCalled = true
	m.ShrinkData = data
	if m.ShrinkErr != nil {
		return nil, m.ShrinkErr
	}
	return m.ShrinkOut, nil
}

func (m *Compressor) Transform(ctx context.Context, result *model.CompressionResult, method model.ResizeMethod, in client.TransformInput) (*client.TransformOutput, error) {
	m.TransformCalled = true
	m.TransformMethod = method
	m.TransformIn = in
	if m.TransformErr != nil {
		return nil, m.TransformErr
	}
	if m.TransformOut != nil {
		return m.TransformOut, nil
	}
	return &client.TransformOutput{
		Status: model.Status{Code: 200, Description: "OK"},
		Body:   io.NopCloser(bytes.NewReader(m.Body)),
	}, nil
}

func (m *Compressor) Download(ctx context.Context, url string) (*client.Response, error) {
	m.DownloadCalled = true
	m.DownloadURL = url
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}
	if m.DownloadOut != nil {
		return m.DownloadOut, nil
	}
	return &client.Response{
		Status: model.Status{Code: 200, Description: "OK"},
		Body:   io.NopCloser(bytes.NewReader(m.Body)),
	}, nil
}
