package task

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func TestOptimiseObjectTask_RoundTrip(t *testing.T) {
	id := uuid.New().String()

	tsk, err := NewOptimiseObjectTask(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tsk.Type() != TypeOptimiseObject {
		t.Errorf("Type() = %q, want %q", tsk.Type(), TypeOptimiseObject)
	}
	if string(tsk.Payload()) != `{"id":"`+id+`"}` {
		t.Errorf("Payload() = %s", tsk.Payload())
	}

	p, err := ParseOptimiseObjectPayload(tsk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != id {
		t.Errorf("ID = %q, want %q", p.ID, id)
	}
}

func TestParseOptimiseObjectPayload_Invalid(t *testing.T) {
	_, err := ParseOptimiseObjectPayload(asynq.NewTask(TypeOptimiseObject, []byte("{not json")))
	if err == nil {
		t.Fatal("expected an error for a broken payload")
	}
}

func TestDispatcher_EnqueueOptimiseObject(t *testing.T) {
	mr := miniredis.RunT(t)

	d := NewDispatcher(mr.Addr(), "")
	defer func() { _ = d.Close() }()

	id := uuid.New()
	if err := d.EnqueueOptimiseObject(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "asynq:") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected asynq keys in redis, got %v", mr.Keys())
	}
}

func TestDispatcher_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	d := NewDispatcher(addr, "")
	defer func() { _ = d.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.EnqueueOptimiseObject(ctx, uuid.New()); err == nil {
		t.Fatal("expected an error when redis is unreachable")
	}
}

func TestNoopDispatcher(t *testing.T) {
	if err := NewNoopDispatcher().EnqueueOptimiseObject(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
