package git

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/errors"
)

// Repository runs git subcommands against a single working tree.
// Every query is a blocking subprocess call; nothing is cached between calls.
type Repository struct {
	path   string
	logger *slog.Logger
}

// NewRepository creates a Repository rooted at path. An empty path means the
// process working directory.
func NewRepository(path string) *Repository {
	return &Repository{
		path:   path,
		logger: slog.Default().With("component", "git"),
	}
}

// Path returns the working tree the repository commands run in
func (r *Repository) Path() string {
	return r.path
}

// run executes git with args and returns raw stdout.
// Failures are returned as git errors carrying the trimmed stderr.
func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.path

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		r.logger.Debug("git command failed", "args", args, "stderr", msg)
		if msg != "" {
			return "", errors.GitErrorf(err, "git %s failed: %s", args[0], msg).
				WithContext("args", strings.Join(args, " "))
		}
		return "", errors.GitErrorf(err, "git %s failed", args[0]).
			WithContext("args", strings.Join(args, " "))
	}

	return string(output), nil
}

// DetectGitRepo checks that the repository path is inside a git working tree
func (r *Repository) DetectGitRepo(ctx context.Context) error {
	if _, err := r.run(ctx, "rev-parse", "--is-inside-work-tree"); err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}
	return nil
}

// HeadCommit returns the SHA of the current commit
func (r *Repository) HeadCommit(ctx context.Context) (string, error) {
	output, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// CommitMessage returns the full message (subject and body) of a commit
func (r *Repository) CommitMessage(ctx context.Context, sha string) (string, error) {
	output, err := r.run(ctx, "log", "-1", "--pretty=%B", sha)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// CurrentBranch returns the name of the current git branch
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}
