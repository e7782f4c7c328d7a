package migration

import (
	"testing"
	"testing/fstest"
)

func TestPreviousVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_create_compression_jobs.up.sql":   {Data: []byte("")},
		"migrations/0001_create_compression_jobs.down.sql": {Data: []byte("")},
		"migrations/0003_add_index.up.sql":                 {Data: []byte("")},
		"migrations/0002_add_column.up.sql":                {Data: []byte("")},
		"migrations/README.md":                             {Data: []byte("")},
	}

	cases := []struct {
		dirty   int
		want    int64
		wantErr bool
	}{
		{dirty: 3, want: 2},
		{dirty: 2, want: 1},
		{dirty: 1, want: -1},
		{dirty: 9, wantErr: true},
	}
	for _, tc := range cases {
		got, err := previousVersion(fsys, tc.dirty)
		if (err != nil) != tc.wantErr {
			t.Fatalf("previousVersion(%d) err = %v; wantErr %v", tc.dirty, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("previousVersion(%d) = %d; want %d", tc.dirty, got, tc.want)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := previousVersion(migrationsFS, 1)
	if err != nil {
		t.Fatalf("embedded migrations unreadable: %v", err)
	}
	if got != -1 {
		t.Errorf("previousVersion(1) = %d; want -1", got)
	}
}
