package storage

import (
	"fmt"

	"github.com/fhuszti/way2enjoy-go/internal/usecase/compression"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return compression.ErrObjectNotFound
	case "NoSuchBucket":
		return compression.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return compression.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", compression.ErrInternal, err)
	}
}
