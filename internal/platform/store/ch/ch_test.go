package ch

import (
	"context"
	"testing"
)

// TestOpen_ValidDSN builds a lazy pool without dialing
func TestOpen_ValidDSN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{URL: "clickhouse://localhost:9000/default"}
	cl, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

// TestOpen_BadDSN surfaces the parse error
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "://not-a-dsn"})
	if err == nil {
		t.Fatalf("Open expected error for malformed DSN")
	}
}

// TestInsert_RejectsUnsupportedShape fails before touching the connection
func TestInsert_RejectsUnsupportedShape(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Insert(context.Background(), "t", struct{}{}); err == nil {
		t.Fatalf("Insert expected shape error, got nil")
	}
}

// TestInsert_EmptyBatchIsNoOp sends nothing for zero rows
func TestInsert_EmptyBatchIsNoOp(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Insert(context.Background(), "t", [][]any{}); err != nil {
		t.Fatalf("Insert on empty batch returned error: %v", err)
	}
}

// TestClose_NilSafe tolerates a zero value client
func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
