package compression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/fhuszti/way2enjoy-go/internal/client"
	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/google/uuid"
)

// OptimisedPrefix is prepended to the object key of every optimised file.
const OptimisedPrefix = "optimised"

type objectOptimiserSrv struct {
	repo port.JobRepository
	api  port.Compressor
	strg port.Storage
}

// compile-time check: *objectOptimiserSrv must satisfy port.ObjectOptimiser
var _ port.ObjectOptimiser = (*objectOptimiserSrv)(nil)

func NewObjectOptimiser(repo port.JobRepository, api port.Compressor, strg port.Storage) port.ObjectOptimiser {
	return &objectOptimiserSrv{repo, api, strg}
}

// OutputKey returns where the optimised version of objectKey is written.
func OutputKey(objectKey string) string {
	return path.Join(OptimisedPrefix, objectKey)
}

func (s *objectOptimiserSrv) OptimiseObject(ctx context.Context, id uuid.UUID) error {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrJobNotFound
		}
		return err
	}
	if job.Status != model.JobStatusPending {
		return ErrJobNotPending
	}

	original, err := s.strg.GetFile(ctx, job.Bucket, job.ObjectKey)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(original)
	_ = original.Close()
	if err != nil {
		return fmt.Errorf("failed to read object %q from bucket %q: %w", job.ObjectKey, job.Bucket, err)
	}

	shrunk, err := s.api.ShrinkBytes(ctx, data, client.ShrinkInput{})
	if err != nil {
		return err
	}
	if shrunk.APIError != nil {
		return s.fail(ctx, job, shrunk.Status, shrunk.APIError.Error())
	}
	result := shrunk.Result
	if result.Failed() || result.ResultURL() == "" {
		return s.fail(ctx, job, shrunk.Status, result.FailureReason())
	}

	body, status, apiErr, err := s.fetchResult(ctx, job, result)
	if err != nil {
		return err
	}
	if apiErr != nil {
		return s.fail(ctx, job, status, apiErr.Error())
	}
	defer func() { _ = body.Close() }()

	outputKey := OutputKey(job.ObjectKey)

	// Save to a tmp file first so a broken stream never lands on the final key
	tempKey := outputKey + ".tmp"
	contentType := result.Output.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.strg.SaveFile(
		ctx,
		job.Bucket,
		tempKey,
		body,
		-1, // streaming mode
		map[string]string{
			"Content-Type": contentType,
		},
	); err != nil {
		return fmt.Errorf("failed to save temp file %q inside bucket %q: %w", tempKey, job.Bucket, err)
	}

	if err := s.strg.CopyFile(ctx, job.Bucket, tempKey, outputKey); err != nil {
		return fmt.Errorf("failed to copy %q→%q inside bucket %q: %w", tempKey, outputKey, job.Bucket, err)
	}

	if err := s.strg.RemoveFile(ctx, job.Bucket, tempKey); err != nil {
		logger.Warnf(ctx, "failed to remove temp file %q from bucket %q: %v", tempKey, job.Bucket, err)
	}

	info, err := s.strg.StatFile(ctx, job.Bucket, outputKey)
	if err != nil {
		return fmt.Errorf("failed reading info about file %q inside bucket %q: %w", outputKey, job.Bucket, err)
	}

	inSize := result.Input.Size
	if inSize == 0 {
		inSize = int64(len(data))
	}
	outSize := info.SizeBytes
	ratio := result.Output.Ratio
	code := status.Code

	job.Status = model.JobStatusCompleted
	job.OutputKey = &outputKey
	job.InputSize = &inSize
	job.OutputSize = &outSize
	job.Ratio = &ratio
	job.HTTPStatus = &code
	job.FailureMessage = nil

	if err := s.repo.Update(ctx, job); err != nil {
		return fmt.Errorf("failed updating job: %w", err)
	}
	logger.Infof(ctx, "✅  job #%s done: %d → %d bytes", job.ID, inSize, outSize)

	return nil
}

// fetchResult returns the stream of the final file: resized when the job asks
// for it, the plain compressed file otherwise. A rejection comes back as a
// non-nil APIError with no body.
func (s *objectOptimiserSrv) fetchResult(ctx context.Context, job *model.Job, result *model.CompressionResult) (io.ReadCloser, model.Status, *model.APIError, error) {
	if job.Resize != nil {
		out, err := s.api.Transform(ctx, result, job.Resize.Method, client.TransformInput{
			Width:  job.Resize.Width,
			Height: job.Resize.Height,
		})
		if err != nil {
			return nil, model.Status{}, nil, err
		}
		if out.APIError != nil {
			return nil, out.Status, out.APIError, nil
		}
		return out.Body, out.Status, nil, nil
	}

	resp, err := s.api.Download(ctx, result.ResultURL())
	if err != nil {
		return nil, model.Status{}, nil, err
	}
	if resp.APIError != nil {
		return nil, resp.Status, resp.APIError, nil
	}
	return resp.Body, resp.Status, nil, nil
}

func (s *objectOptimiserSrv) fail(ctx context.Context, job *model.Job, status model.Status, reason string) error {
	logger.Warnf(ctx, "❌  job #%s rejected (%s): %s", job.ID, status, reason)

	code := status.Code
	job.Status = model.JobStatusFailed
	job.HTTPStatus = &code
	job.FailureMessage = &reason
	if err := s.repo.Update(ctx, job); err != nil {
		return fmt.Errorf("failed updating job: %w", err)
	}
	return fmt.Errorf("%w: %s", ErrCompressionFail, reason)
}
