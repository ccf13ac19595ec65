package git

import (
	"context"
	"fmt"
	"strings"
)

// MergeBase returns the best common ancestor of two refs
func (r *Repository) MergeBase(ctx context.Context, a, b string) (string, error) {
	output, err := r.run(ctx, "merge-base", a, b)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// RecentSubjects returns up to limit commit subjects reachable from HEAD but
// not from baseRef, newest first as git log prints them.
//
// For example, on a feature branch with baseRef "origin/main" and limit 3 this
// returns the last three commits made on the branch.
func (r *Repository) RecentSubjects(ctx context.Context, baseRef string, limit int) ([]string, error) {
	mergeBase, err := r.MergeBase(ctx, baseRef, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("find merge base with %s: %w", baseRef, err)
	}

	output, err := r.run(ctx, "log", "--pretty=%s", fmt.Sprintf("-n%d", limit), mergeBase+"..HEAD")
	if err != nil {
		return nil, err
	}

	var subjects []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			subjects = append(subjects, line)
		}
	}

	return subjects, nil
}
