package gitsync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Config contains configuration for a mapping distribution repository.
type Config struct {
	// Repository is the clone URL of the mapping distribution repo.
	Repository string

	// Branch is the branch holding the published mapping set.
	// Default: "main".
	Branch string

	// Depth is the shallow-clone depth; 0 clones full history.
	Depth int

	// LocalPath is the checkout location. Defaults to a refmatch
	// directory under the system temp dir.
	LocalPath string

	// Timeout bounds clone and pull operations. Default: 60s.
	Timeout time.Duration
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.Branch == "" {
		c.Branch = "main"
	}
	if c.LocalPath == "" {
		c.LocalPath = filepath.Join(os.TempDir(), "refmatch-mappings")
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
}

// SyncResult reports the outcome of one Sync.
type SyncResult struct {
	// FromSHA and ToSHA are the HEAD commits before and after the sync.
	// FromSHA is empty on an initial clone.
	FromSHA string
	ToSHA   string

	// Cloned is true when the sync performed the initial clone.
	Cloned bool

	// Updated is true when the sync moved HEAD.
	Updated bool
}

// Repository manages the local checkout of a mapping distribution repo.
type Repository struct {
	config Config
	repo   *gogit.Repository
	mu     sync.Mutex
	logger *slog.Logger
}

// NewRepository creates a repository manager for the given configuration.
func NewRepository(config Config) (*Repository, error) {
	if config.Repository == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	config.applyDefaults()

	return &Repository{
		config: config,
		logger: slog.Default().With("component", "mapping.gitsync"),
	}, nil
}

// LocalPath returns the checkout location.
func (r *Repository) LocalPath() string {
	return r.config.LocalPath
}

// Sync brings the local checkout up to date: an initial clone when no
// checkout exists, a fast-forward pull otherwise.
func (r *Repository) Sync(ctx context.Context) (*SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gitDir := filepath.Join(r.config.LocalPath, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		if err := r.clone(ctx); err != nil {
			return nil, err
		}
		head, err := r.head()
		if err != nil {
			return nil, err
		}
		r.logger.Info("cloned mapping repository",
			"repo", r.config.Repository,
			"branch", r.config.Branch,
			"head", head,
		)
		return &SyncResult{ToSHA: head, Cloned: true, Updated: true}, nil
	}

	if r.repo == nil {
		repo, err := gogit.PlainOpen(r.config.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open existing checkout: %w", err)
		}
		r.repo = repo
	}

	fromSHA, err := r.head()
	if err != nil {
		return nil, err
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	err = worktree.PullContext(pullCtx, &gogit.PullOptions{
		RemoteName: "origin",
		Force:      false,
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return nil, fmt.Errorf("failed to pull: %w", err)
	}

	toSHA, err := r.head()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		FromSHA: fromSHA,
		ToSHA:   toSHA,
		Updated: fromSHA != toSHA,
	}
	if result.Updated {
		r.logger.Info("updated mapping checkout", "from", fromSHA, "to", toSHA)
	}
	return result, nil
}

// clone performs the initial clone. Caller holds the lock.
func (r *Repository) clone(ctx context.Context) error {
	if err := os.MkdirAll(r.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("failed to create checkout directory: %w", err)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	repo, err := gogit.PlainCloneContext(cloneCtx, r.config.LocalPath, false, &gogit.CloneOptions{
		URL:           r.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(r.config.Branch),
		SingleBranch:  true,
		Depth:         r.config.Depth,
	})
	if err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	r.repo = repo
	return nil
}

// head returns the current HEAD commit SHA. Caller holds the lock.
func (r *Repository) head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// HeadCommit returns metadata about the current HEAD commit.
func (r *Repository) HeadCommit() (sha, author, message string, when time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo == nil {
		return "", "", "", time.Time{}, fmt.Errorf("checkout not initialized, call Sync first")
	}

	ref, err := r.repo.Head()
	if err != nil {
		return "", "", "", time.Time{}, fmt.Errorf("failed to get HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", "", "", time.Time{}, fmt.Errorf("failed to get commit: %w", err)
	}
	return commit.Hash.String(), commit.Author.Name, commit.Message, commit.Author.When, nil
}
