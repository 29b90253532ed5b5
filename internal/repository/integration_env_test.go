//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/emotionlog/emotionlog/internal/testutil"
)

// newTestEnv connects to DATABASE_URL, serializes against other packages
// using the same database and rebuilds the schema from the embedded
// migrations.
func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()
	repo, err := New(ctx, testutil.RequireEnv(t, "DATABASE_URL"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("AcquireDBLock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("ResetSchema: %v", err)
	}
	return ctx, repo
}
