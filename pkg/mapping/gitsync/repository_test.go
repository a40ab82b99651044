package gitsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initOrigin creates a local origin repository with one committed
// mapping file and returns its path.
func initOrigin(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error = %v, want nil", err)
	}

	commitFile(t, repo, dir, "hst.pmap", "header: {name: hst.pmap, kind: pipeline, observatory: hst}\n")
	return dir
}

func commitFile(t *testing.T, repo *gogit.Repository, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error = %v, want nil", err)
	}
	if _, err := worktree.Add(name); err != nil {
		t.Fatalf("Add(%s) error = %v, want nil", name, err)
	}
	_, err = worktree.Commit("update "+name, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "ops",
			Email: "ops@example.org",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit() error = %v, want nil", err)
	}
}

func TestRepository_Sync_CloneAndUpdate(t *testing.T) {
	origin := initOrigin(t)
	local := filepath.Join(t.TempDir(), "checkout")

	repo, err := NewRepository(Config{
		Repository: origin,
		Branch:     "master",
		LocalPath:  local,
	})
	if err != nil {
		t.Fatalf("NewRepository() error = %v, want nil", err)
	}

	ctx := context.Background()

	result, err := repo.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() error = %v, want nil", err)
	}
	if !result.Cloned || !result.Updated {
		t.Errorf("initial Sync() = %+v, want Cloned and Updated", result)
	}
	if _, err := os.Stat(filepath.Join(local, "hst.pmap")); err != nil {
		t.Errorf("mapping file missing after clone: %v", err)
	}

	// Second sync with no upstream change is a no-op.
	result, err = repo.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() error = %v, want nil", err)
	}
	if result.Updated {
		t.Errorf("no-op Sync() = %+v, want Updated=false", result)
	}

	// Upstream change is picked up.
	originRepo, err := gogit.PlainOpen(origin)
	if err != nil {
		t.Fatalf("PlainOpen(origin) error = %v, want nil", err)
	}
	commitFile(t, originRepo, origin, "hst_acs.imap",
		"header: {name: hst_acs.imap, kind: instrument, observatory: hst, instrument: acs}\n")

	result, err = repo.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() after upstream commit error = %v, want nil", err)
	}
	if !result.Updated {
		t.Errorf("Sync() after upstream commit = %+v, want Updated", result)
	}

	sha, author, _, _, err := repo.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit() error = %v, want nil", err)
	}
	if sha != result.ToSHA {
		t.Errorf("HeadCommit() sha = %q, want %q", sha, result.ToSHA)
	}
	if author != "ops" {
		t.Errorf("HeadCommit() author = %q, want %q", author, "ops")
	}
}

func TestNewRepository_RequiresURL(t *testing.T) {
	if _, err := NewRepository(Config{}); err == nil {
		t.Error("NewRepository(empty) error = nil, want error")
	}
}
