package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ResizeMethod string

const (
	// ResizeCover scales and crops to exactly width x height.
	ResizeCover ResizeMethod = "cover"
	// ResizeFit scales down to fit within width x height.
	ResizeFit ResizeMethod = "fit"
	// ResizeScale scales down proportionally from a single dimension.
	ResizeScale ResizeMethod = "scale"
)

// DefaultStoreService is the only storage service the API knows about.
const DefaultStoreService = "s3"

// TransformOptions is the JSON body sent to a result URL.
type TransformOptions struct {
	Resize *Resize      `json:"resize,omitempty"`
	Store  *StoreTarget `json:"store,omitempty"`
}

// Resize describes a server-side resize. A zero dimension is left out of the
// request. The API wants both dimensions for cover and fit and exactly one
// for scale; that rule is enforced remotely.
type Resize struct {
	Method ResizeMethod `json:"method" validate:"required,oneof=cover fit scale"`
	Width  int          `json:"width,omitempty" validate:"gte=0"`
	Height int          `json:"height,omitempty" validate:"gte=0"`
}

func (r Resize) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal Resize: %w", err)
	}
	return b, nil
}
func (r *Resize) Scan(src interface{}) error {
	if src == nil {
		*r = Resize{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Resize.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return fmt.Errorf("unmarshal Resize: %w", err)
	}
	return nil
}

// StoreTarget holds third-party storage credentials. They are forwarded to the
// API untouched.
type StoreTarget struct {
	Service            string `json:"service"`
	AWSAccessKeyID     string `json:"aws_access_key_id"`
	AWSSecretAccessKey string `json:"aws_secret_access_key"`
	Region             string `json:"region"`
	Path               string `json:"path"`
}

// NewS3Target builds a StoreTarget for the "s3" service.
func NewS3Target(accessKeyID, secretAccessKey, region, path string) *StoreTarget {
	return &StoreTarget{
		Service:            DefaultStoreService,
		AWSAccessKeyID:     accessKeyID,
		AWSSecretAccessKey: secretAccessKey,
		Region:             region,
		Path:               path,
	}
}
