package enhancer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/config"
	"github.com/rohankatakam/enhance-commits/internal/errors"
	"github.com/rohankatakam/enhance-commits/internal/github"
	"github.com/rohankatakam/enhance-commits/internal/llm"
	"github.com/rohankatakam/enhance-commits/internal/llm/prompts"
)

// DiffSource produces the combined diff of a pull request
type DiffSource interface {
	RangeDiff(ctx context.Context, base, head string) (string, error)
}

// DescriptionUpdater writes a pull request body
type DescriptionUpdater interface {
	UpdateDescription(ctx context.Context, owner, repo string, number int, body string) error
}

// PRFlow enhances the description of the pull request that triggered the
// workflow.
type PRFlow struct {
	diffs     DiffSource
	boundDiff func(string) string
	gen       llm.Generator
	updater   DescriptionUpdater
	env       config.ActionsEnv
	loadEvent func(path string) (*github.PullRequestInfo, error)
	logger    *slog.Logger
}

// NewPRFlow wires a pull request flow. boundDiff applies the character
// ceiling to the raw diff. A nil updater makes Update a dry run.
func NewPRFlow(diffs DiffSource, boundDiff func(string) string, gen llm.Generator, updater DescriptionUpdater, env config.ActionsEnv) *PRFlow {
	return &PRFlow{
		diffs:     diffs,
		boundDiff: boundDiff,
		gen:       gen,
		updater:   updater,
		env:       env,
		loadEvent: github.LoadPullRequestEvent,
		logger:    slog.Default().With("component", "pr-flow"),
	}
}

// PROutcome reports what Update did
type PROutcome struct {
	Number   int
	Original string
	Enhanced string
	Updated  bool
}

// Run is the best-effort entry point used in CI: outside pull_request events
// it does nothing, and every failure is logged and swallowed.
func (f *PRFlow) Run(ctx context.Context) bool {
	if !f.env.IsPullRequest() {
		f.logger.Debug("not a pull request event, skipping", "event", f.env.EventName)
		return false
	}

	outcome, err := f.Update(ctx)
	if err != nil {
		if errors.IsFatal(err) {
			f.logger.Error("error updating PR description", "error", err)
		} else {
			f.logger.Warn("PR description left unchanged", "error", err)
		}
		return false
	}
	return outcome.Updated
}

// Update loads the triggering pull request, generates a new description from
// its diff and writes it back.
func (f *PRFlow) Update(ctx context.Context) (*PROutcome, error) {
	pr, err := f.loadEvent(f.env.EventPath)
	if err != nil {
		return nil, err
	}

	outcome := &PROutcome{Number: pr.Number, Original: pr.Body}

	if pr.BaseSHA == "" || pr.HeadSHA == "" {
		return outcome, fmt.Errorf("pull request #%d payload lacks base or head sha", pr.Number)
	}

	diff, err := f.diffs.RangeDiff(ctx, pr.BaseSHA, pr.HeadSHA)
	if err != nil {
		return outcome, fmt.Errorf("diff pull request #%d: %w", pr.Number, err)
	}
	if strings.TrimSpace(diff) == "" {
		return outcome, fmt.Errorf("pull request #%d has an empty diff", pr.Number)
	}

	enhanced, err := llm.Enhance(ctx, f.gen, prompts.PRUser(pr.Body, f.boundDiff(diff)))
	if err != nil {
		return outcome, fmt.Errorf("enhance PR description: %w", err)
	}
	outcome.Enhanced = enhanced

	if f.updater == nil {
		f.logger.Info("dry run, pull request left untouched", "number", pr.Number)
		return outcome, nil
	}

	owner, repo, err := f.env.OwnerRepo()
	if err != nil {
		return outcome, err
	}
	if err := f.updater.UpdateDescription(ctx, owner, repo, pr.Number, enhanced); err != nil {
		return outcome, err
	}
	outcome.Updated = true

	f.logger.Info("PR description updated successfully", "number", pr.Number)
	return outcome, nil
}
