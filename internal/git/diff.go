package git

import (
	"context"
	"fmt"
	"strings"
)

// FileDiff returns the unified diff a commit introduced for one file.
// Commit metadata is suppressed so the output starts at the `diff --git` header.
func (r *Repository) FileDiff(ctx context.Context, sha, path string) (string, error) {
	output, err := r.run(ctx, "show", "--format=", "--no-color", "--no-ext-diff", sha, "--", path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(output, "\n"), nil
}

// RangeDiff returns the diff between the merge base of base and head, and head.
// Both refs must already exist locally.
func (r *Repository) RangeDiff(ctx context.Context, base, head string) (string, error) {
	if base == "" || head == "" {
		return "", fmt.Errorf("range diff needs both base and head (got %q, %q)", base, head)
	}

	output, err := r.run(ctx, "diff", "--no-color", "--no-ext-diff", base+"..."+head)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(output, "\n"), nil
}
