package compression

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	ErrJobNotFound     = errors.New("job not found")
	ErrJobNotPending   = errors.New("job status should be 'pending' to be run")
	ErrCompressionFail = errors.New("compression rejected")
)
