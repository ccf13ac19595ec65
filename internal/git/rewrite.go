package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/errors"
)

// Rewriter replaces the message of the most recent commit and optionally
// force-pushes the rewritten branch.
type Rewriter struct {
	repo   *Repository
	remote string
	push   bool
}

// NewRewriter creates a Rewriter. An empty remote lets git push pick the
// branch's configured upstream.
func NewRewriter(repo *Repository, remote string, push bool) *Rewriter {
	return &Rewriter{repo: repo, remote: remote, push: push}
}

// Rewrite amends HEAD with message. The message is passed to git through a
// temporary file that is removed afterwards. Nothing is retried.
func (w *Rewriter) Rewrite(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.ValidationErrorf("refusing to amend with an empty commit message")
	}

	tmpFile, err := os.CreateTemp("", "enhance-commits-msg-*.txt")
	if err != nil {
		return errors.FileSystemError(err, "failed to create temp file")
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(message); err != nil {
		tmpFile.Close()
		return errors.FileSystemError(err, "failed to write commit message")
	}
	if err := tmpFile.Close(); err != nil {
		return errors.FileSystemError(err, "failed to close temp file")
	}

	if _, err := w.repo.run(ctx, "commit", "--amend", "-F", tmpFile.Name()); err != nil {
		return fmt.Errorf("amend commit: %w", err)
	}
	w.repo.logger.Info("commit amended")

	if !w.push {
		return nil
	}

	args := []string{"push", "--force"}
	if w.remote != "" {
		args = append(args, w.remote, "HEAD")
	}
	if _, err := w.repo.run(ctx, args...); err != nil {
		return fmt.Errorf("force push: %w", err)
	}
	w.repo.logger.Info("rewritten commit pushed", "remote", w.remote)

	return nil
}
