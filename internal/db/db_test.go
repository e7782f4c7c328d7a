package db

import (
	"testing"
	"time"
)

// TestNew_PingError ensures that ping failures are propagated
// even when closing the connection succeeds.
func TestNew_PingError(t *testing.T) {
	cfg := MariaDbConfig{
		DSN:             "invalid:invalid@tcp(127.0.0.1:0)/dbname?timeout=1s",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Second,
	}
	db, err := New(cfg)
	if err == nil {
		if db != nil {
			_ = db.Close()
		}
		t.Fatalf("expected error, got nil")
	}
}

func TestNew_EmptyDSN(t *testing.T) {
	if _, err := New(MariaDbConfig{}); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
