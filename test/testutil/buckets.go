package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// TestBuckets lists the buckets every integration test starts from.
var TestBuckets = []string{"images", "docs"}

// SetupTestBuckets (re)creates TestBuckets and returns a cleanup emptying and
// dropping them.
func SetupTestBuckets(client *minio.Client) (func() error, error) {
	ctx := context.Background()

	for _, b := range TestBuckets {
		// ignore any errors here (e.g., bucket not found)
		_ = client.RemoveBucket(ctx, b)
		if err := client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			exists, err2 := client.BucketExists(ctx, b)
			if err2 != nil || !exists {
				return nil, fmt.Errorf("could not create bucket %q: %w", b, err)
			}
		}
	}

	cleanup := func() error {
		for _, b := range TestBuckets {
			for obj := range client.ListObjects(ctx, b, minio.ListObjectsOptions{Recursive: true}) {
				if obj.Err != nil {
					continue
				}
				_ = client.RemoveObject(ctx, b, obj.Key, minio.RemoveObjectOptions{})
			}
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return cleanup, nil
}
