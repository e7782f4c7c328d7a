package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/google/uuid"
)

type JobRepository struct {
	db *sql.DB
}

// compile-time check: *JobRepository must satisfy port.JobRepository
var _ port.JobRepository = (*JobRepository)(nil)

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	logger.Infof(ctx, "creating database record for job #%s, at status %q...", job.ID, job.Status)

	const query = `
      INSERT INTO compression_jobs
        (id, bucket, object_key, resize, status)
      VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		job.ID.String(), job.Bucket, job.ObjectKey, job.Resize, job.Status,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	logger.Infof(ctx, "updating database record for job #%s, with status %q...", job.ID, job.Status)

	const query = `
      UPDATE compression_jobs
      SET
        output_key      = ?,
        status          = ?,
        input_size      = ?,
        output_size     = ?,
        ratio           = ?,
        http_status     = ?,
        failure_message = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		job.OutputKey,
		job.Status,
		job.InputSize,
		job.OutputSize,
		job.Ratio,
		job.HTTPStatus,
		job.FailureMessage,
		job.ID.String(), // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	const query = `
      SELECT id, bucket, object_key, output_key, resize, status, input_size, output_size, ratio, http_status, failure_message, created_at, updated_at
      FROM compression_jobs
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id.String())

	var job model.Job
	if err := row.Scan(
		&job.ID,
		&job.Bucket,
		&job.ObjectKey,
		&job.OutputKey,
		&job.Resize,
		&job.Status,
		&job.InputSize,
		&job.OutputSize,
		&job.Ratio,
		&job.HTTPStatus,
		&job.FailureMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &job, nil
}
