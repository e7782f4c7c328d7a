package port

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	"github.com/fhuszti/way2enjoy-go/internal/model"
)

// Compressor is the remote compression API as seen by the use cases.
// *client.Client satisfies it.
type Compressor interface {
	ShrinkBytes(ctx context.Context, data []byte, in client.ShrinkInput) (*client.ShrinkOutput, error)
	Transform(ctx context.Context, result *model.CompressionResult, method model.ResizeMethod, in client.TransformInput) (*client.TransformOutput, error)
	Download(ctx context.Context, url string) (*client.Response, error)
}
