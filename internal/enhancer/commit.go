// Package enhancer runs the two CI flows: rewriting the latest commit
// message and rewriting a pull request description.
package enhancer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rohankatakam/enhance-commits/internal/llm"
	"github.com/rohankatakam/enhance-commits/internal/llm/prompts"
	"github.com/rohankatakam/enhance-commits/internal/summary"
)

const unknownBranch = "unknown"

// CommitSource is the git access the commit flow needs
type CommitSource interface {
	summary.Repository
	CurrentBranch(ctx context.Context) (string, error)
	RecentSubjects(ctx context.Context, baseRef string, limit int) ([]string, error)
}

// MessageWriter replaces the message of the most recent commit
type MessageWriter interface {
	Rewrite(ctx context.Context, message string) error
}

// CommitOptions configure a CommitFlow
type CommitOptions struct {
	Project       prompts.Project
	DefaultBranch string
	Remote        string
}

// CommitFlow enhances the message of HEAD
type CommitFlow struct {
	repo     CommitSource
	pipeline *summary.Pipeline
	gen      llm.Generator
	writer   MessageWriter
	opts     CommitOptions
	logger   *slog.Logger
}

// NewCommitFlow wires a commit flow. A nil writer makes Run a dry run.
func NewCommitFlow(repo CommitSource, pipeline *summary.Pipeline, gen llm.Generator, writer MessageWriter, opts CommitOptions) *CommitFlow {
	return &CommitFlow{
		repo:     repo,
		pipeline: pipeline,
		gen:      gen,
		writer:   writer,
		opts:     opts,
		logger:   slog.Default().With("component", "commit-flow"),
	}
}

// Prepared is a summarised commit and the prompt built from it
type Prepared struct {
	SHA    string
	Result *summary.Result
	Prompt string
}

// CommitOutcome reports what Run did
type CommitOutcome struct {
	SHA       string
	Original  string
	Enhanced  string
	Rewritten bool
}

// Prepare gathers the commit metadata and runs the summary pipeline without
// touching the model or the repository.
func (f *CommitFlow) Prepare(ctx context.Context) (*Prepared, error) {
	sha, err := f.repo.HeadCommit(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	message, err := f.repo.CommitMessage(ctx, sha)
	if err != nil {
		return nil, fmt.Errorf("read commit message: %w", err)
	}

	branch := f.branchName(ctx)
	meta := summary.Metadata{
		OriginalMessage: message,
		BranchName:      branch,
		RecentCommits:   f.recentCommits(ctx, branch),
	}

	result, err := f.pipeline.Run(ctx, sha, meta)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		SHA:    sha,
		Result: result,
		Prompt: prompts.CommitUser(f.opts.Project, result.Context),
	}, nil
}

// Run prepares the commit, generates the enhanced message and amends HEAD
// with it. Generation and rewrite failures are returned; nothing is retried.
func (f *CommitFlow) Run(ctx context.Context) (*CommitOutcome, error) {
	prepared, err := f.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	outcome := &CommitOutcome{
		SHA:      prepared.SHA,
		Original: prepared.Result.Context.OriginalMessage,
	}

	enhanced, err := llm.Enhance(ctx, f.gen, prepared.Prompt)
	if err != nil {
		return outcome, fmt.Errorf("enhance commit message: %w", err)
	}
	outcome.Enhanced = enhanced

	if f.writer == nil {
		f.logger.Info("dry run, commit left untouched", "sha", prepared.SHA)
		return outcome, nil
	}

	if err := f.writer.Rewrite(ctx, enhanced); err != nil {
		return outcome, fmt.Errorf("update commit message: %w", err)
	}
	outcome.Rewritten = true

	f.logger.Info("commit message enhanced", "sha", prepared.SHA, "length", len(enhanced))
	return outcome, nil
}

func (f *CommitFlow) branchName(ctx context.Context) string {
	branch, err := f.repo.CurrentBranch(ctx)
	if err != nil || branch == "" {
		f.logger.Warn("could not determine branch name", "error", err)
		return unknownBranch
	}
	return branch
}

// recentCommits lists up to three subjects since the branch left the default
// branch. Trunk branches have no such history and failures degrade to none.
func (f *CommitFlow) recentCommits(ctx context.Context, branch string) []string {
	if f.isTrunk(branch) {
		return nil
	}

	baseRef := f.opts.DefaultBranch
	if f.opts.Remote != "" {
		baseRef = f.opts.Remote + "/" + f.opts.DefaultBranch
	}

	subjects, err := f.repo.RecentSubjects(ctx, baseRef, summary.MaxRecentCommits)
	if err != nil {
		f.logger.Warn("could not list recent branch commits", "base", baseRef, "error", err)
		return nil
	}
	return subjects
}

func (f *CommitFlow) isTrunk(branch string) bool {
	switch branch {
	case "main", "master", unknownBranch:
		return true
	}
	return branch == f.opts.DefaultBranch
}
