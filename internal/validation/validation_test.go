package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fhuszti/way2enjoy-go/internal/model"
)

func TestValidateStructAndErrorsToJson(t *testing.T) {
	type Input struct {
		Bucket    string        `validate:"required"  json:"bucket"`
		ObjectKey string        `validate:"required"  json:"object_key"`
		Resize    *model.Resize `validate:"omitempty" json:"resize,omitempty"`
	}

	tests := []struct {
		name        string
		in          Input
		wantErr     bool
		wantJsonMap map[string]string
	}{
		{
			name:    "success without resize",
			in:      Input{Bucket: "images", ObjectKey: "cat.png"},
			wantErr: false,
		},
		{
			name:    "success with resize",
			in:      Input{Bucket: "images", ObjectKey: "cat.png", Resize: &model.Resize{Method: model.ResizeFit, Width: 10, Height: 10}},
			wantErr: false,
		},
		{
			name:    "missing keys",
			in:      Input{},
			wantErr: true,
			wantJsonMap: map[string]string{
				"bucket":     "required",
				"object_key": "required",
			},
		},
		{
			name:    "unknown method",
			in:      Input{Bucket: "b", ObjectKey: "k", Resize: &model.Resize{Method: "stretch", Width: 10}},
			wantErr: true,
			wantJsonMap: map[string]string{
				"resize.method": "oneof",
			},
		},
		{
			name:    "negative dimensions",
			in:      Input{Bucket: "b", ObjectKey: "k", Resize: &model.Resize{Method: model.ResizeCover, Width: -1, Height: -5}},
			wantErr: true,
			wantJsonMap: map[string]string{
				"resize.width":  "gte",
				"resize.height": "gte",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			js, jerr := ErrorsToJson(err)
			if jerr != nil {
				t.Fatalf("ErrorsToJson() error = %v", jerr)
			}
			var got map[string]string
			if err := json.Unmarshal([]byte(js), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(got) != len(tt.wantJsonMap) {
				t.Errorf("got %d errors %v, want %d", len(got), got, len(tt.wantJsonMap))
			}
			for field, tag := range tt.wantJsonMap {
				if got[field] != tag {
					t.Errorf("field %q: got %q, want %q", field, got[field], tag)
				}
			}
		})
	}
}

func TestJsonTagFallback(t *testing.T) {
	type Outer struct {
		Bar int `validate:"required"`
	}

	js, err := ErrorsToJson(ValidateStruct(Outer{}))
	if err != nil {
		t.Fatalf("ErrorsToJson() error = %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["Bar"] != "required" {
		t.Errorf("Bar: got %q, want %q", got["Bar"], "required")
	}
}

func TestErrorsToJson_NotValidationErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := ErrorsToJson(boom); !errors.Is(err, boom) {
		t.Fatalf("expected the original error back, got %v", err)
	}
}
