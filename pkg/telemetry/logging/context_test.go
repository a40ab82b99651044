package logging

import (
	"context"
	"testing"
)

func TestWithInvocationID(t *testing.T) {
	ctx, id := WithInvocationID(context.Background())

	if id == "" {
		t.Fatal("WithInvocationID() returned empty ID")
	}
	if got := GetInvocationID(ctx); got != id {
		t.Errorf("GetInvocationID() = %q, want %q", got, id)
	}

	_, second := WithInvocationID(context.Background())
	if second == id {
		t.Error("two invocations produced the same ID")
	}
}

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	if fields := ContextFields(ctx); len(fields) != 0 {
		t.Errorf("ContextFields(empty) = %v, want none", fields)
	}

	ctx, id := WithInvocationID(ctx)
	ctx = WithCommand(ctx, "matches")

	fields := ContextFields(ctx)
	if len(fields) != 4 {
		t.Fatalf("ContextFields() returned %d elements, want 4", len(fields))
	}
	if fields[0] != "invocation_id" || fields[1] != id {
		t.Errorf("fields[0:2] = %v, want invocation_id/%s", fields[:2], id)
	}
	if fields[2] != "command" || fields[3] != "matches" {
		t.Errorf("fields[2:4] = %v, want command/matches", fields[2:4])
	}
}
