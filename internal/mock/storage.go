package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/way2enjoy-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      io.ReadSeeker
	ExistsOut   bool

	// captured inputs
	Bucket      string
	ObjectKey   string
	Saved       []byte
	SavedKey    string
	SavedOpts   map[string]string
	CopiedFrom  string
	CopiedTo    string
	RemovedKeys []string

	// errors
	InitBucketErr error
	StatErr       error
	RemoveErr     error
	GetErr        error
	SaveErr       error
	CopyErr       error
	FileExistsErr error

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	RemoveCalled     bool
	GetCalled        bool
	SaveCalled       bool
	CopyCalled       bool
	FileExistsCalled bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	m.Bucket = bucket
	return m.InitBucketErr
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.GetOut != nil {
		return noopRSC{m.GetOut}, nil
	}
	return noopRSC{bytes.NewReader([]byte("dummy"))}, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SavedKey = fileKey
	m.SavedOpts = opts
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.Saved = data
	return nil
}

func (m *Storage) CopyFile(ctx context.Context, bucket, srcKey, destKey string) error {
	m.CopyCalled = true
	m.CopiedFrom = srcKey
	m.CopiedTo = destKey
	return m.CopyErr
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}
