// Command shrink uploads a file to the Way2enjoy API, optionally resizes the
// result and stores it to S3, then prints what the API answered.
//
//	shrink -in photo.png -out small.png
//	shrink -in photo.png -method cover -width 300 -height 200 -out thumb.png
//	shrink -in photo.png -s3-bucket-path my-bucket/photos/photo.png -s3-region eu-west-1 \
//	       -s3-key AKIA... -s3-secret ...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	"github.com/fhuszti/way2enjoy-go/internal/config"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
)

type options struct {
	in     string
	out    string
	method string
	width  int
	height int

	s3Path   string
	s3Region string
	s3Key    string
	s3Secret string
}

// report is printed to stdout as JSON once the run is over.
type report struct {
	Result    *model.CompressionResult `json:"result,omitempty"`
	Upload    model.Status             `json:"upload"`
	Store     *model.Status            `json:"store,omitempty"`
	Download  *model.Status            `json:"download,omitempty"`
	Transform *model.Status            `json:"transform,omitempty"`
	Errors    []*model.APIError        `json:"errors,omitempty"`
	Written   int64                    `json:"written,omitempty"`
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// stdout carries the report only
	logger.InitWriter(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	c := client.New(cfg.APIKey, cfg.ClientOptions()...)
	rep, err := run(ctx, c, opts)
	if rep != nil {
		if encErr := writeReport(os.Stdout, rep); encErr != nil {
			logger.Errorf(ctx, "❌  Failed to print report: %v", encErr)
		}
	}
	if err != nil {
		logger.Errorf(ctx, "❌  %v", err)
		os.Exit(1)
	}
	if len(rep.Errors) > 0 {
		os.Exit(3)
	}
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("shrink", flag.ContinueOnError)
	o := &options{}
	fs.StringVar(&o.in, "in", "", "file to compress (required)")
	fs.StringVar(&o.out, "out", "", "where to write the result")
	fs.StringVar(&o.method, "method", "", "resize method: cover, fit or scale")
	fs.IntVar(&o.width, "width", 0, "target width in pixels")
	fs.IntVar(&o.height, "height", 0, "target height in pixels")
	fs.StringVar(&o.s3Path, "s3-bucket-path", "", "S3 destination, <bucket>/<path>")
	fs.StringVar(&o.s3Region, "s3-region", "", "S3 region")
	fs.StringVar(&o.s3Key, "s3-key", "", "AWS access key id")
	fs.StringVar(&o.s3Secret, "s3-secret", "", "AWS secret access key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if o.in == "" {
		return nil, errors.New("-in is required")
	}
	switch model.ResizeMethod(o.method) {
	case "", model.ResizeCover, model.ResizeFit, model.ResizeScale:
	default:
		return nil, fmt.Errorf("unknown resize method %q", o.method)
	}
	if o.width < 0 || o.height < 0 {
		return nil, errors.New("-width and -height must not be negative")
	}
	if o.method != "" && o.width == 0 && o.height == 0 {
		return nil, fmt.Errorf("-method %s needs -width or -height", o.method)
	}
	return o, nil
}

func (o *options) store() *model.StoreTarget {
	if o.s3Path == "" {
		return nil
	}
	return model.NewS3Target(o.s3Key, o.s3Secret, o.s3Region, o.s3Path)
}

// run uploads the input, then either lets the upload download and store the
// plain result or hands both to the transform when a resize is asked.
func run(ctx context.Context, c *client.Client, o *options) (*report, error) {
	in := client.ShrinkInput{InputPath: o.in}
	if o.method == "" {
		in.OutputPath = o.out
		in.Store = o.store()
	}

	shrunk, err := c.Shrink(ctx, in)
	if err != nil {
		return nil, err
	}

	rep := &report{
		Result:   shrunk.Result,
		Upload:   shrunk.Status,
		Store:    shrunk.StoreStatus,
		Download: shrunk.DownloadStatus,
		Written:  shrunk.Written,
	}
	rep.addError(shrunk.APIError)
	rep.addError(shrunk.StoreError)
	rep.addError(shrunk.DownloadError)

	if o.method == "" || shrunk.Result.ResultURL() == "" {
		return rep, nil
	}

	tin := client.TransformInput{
		Width:      o.width,
		Height:     o.height,
		OutputPath: o.out,
		Store:      o.store(),
	}
	out, err := c.Transform(ctx, shrunk.Result, model.ResizeMethod(o.method), tin)
	if err != nil {
		return rep, err
	}
	rep.Transform = &out.Status
	rep.addError(out.APIError)
	if out.Body != nil {
		_ = out.Body.Close()
	}
	rep.Written = out.Written

	return rep, nil
}

func (r *report) addError(e *model.APIError) {
	if e != nil {
		r.Errors = append(r.Errors, e)
	}
}

func writeReport(w io.Writer, r *report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
