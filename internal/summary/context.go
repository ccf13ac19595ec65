package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

// MaxRecentCommits caps the branch history handed to the model
const MaxRecentCommits = 3

// noRecentCommits stands in for an empty branch history
const noRecentCommits = "(N/A or first commit)"

// CommitContext is everything the language model is told about a commit
type CommitContext struct {
	OriginalMessage      string   `json:"original_message" yaml:"original_message"`
	BranchName           string   `json:"branch_name" yaml:"branch_name"`
	RecentCommitSubjects []string `json:"recent_commit_subjects" yaml:"recent_commit_subjects"`
	AreaSummary          string   `json:"area_summary" yaml:"area_summary"`
	DiffText             string   `json:"diff_text" yaml:"diff_text"`
}

// Assemble combines the pieces into a CommitContext. Only the first
// MaxRecentCommits subjects are kept.
func Assemble(originalMessage, branchName string, recent []string, areaSummary, diffText string) CommitContext {
	kept := make([]string, 0, MaxRecentCommits)
	for _, s := range recent {
		if len(kept) == MaxRecentCommits {
			break
		}
		kept = append(kept, s)
	}

	return CommitContext{
		OriginalMessage:      originalMessage,
		BranchName:           branchName,
		RecentCommitSubjects: kept,
		AreaSummary:          areaSummary,
		DiffText:             diffText,
	}
}

// RecentSteps renders the branch history as an indented bullet list
func (c CommitContext) RecentSteps() string {
	if len(c.RecentCommitSubjects) == 0 {
		return noRecentCommits
	}

	lines := make([]string, len(c.RecentCommitSubjects))
	for i, s := range c.RecentCommitSubjects {
		lines[i] = "    - " + s
	}
	return strings.Join(lines, "\n")
}

// Metadata is the commit information gathered outside the diff pipeline
type Metadata struct {
	OriginalMessage string
	BranchName      string
	RecentCommits   []string
}

// Pipeline runs enumerate, classify, sample, truncate and assemble for one commit
type Pipeline struct {
	repo       Repository
	sampler    *Sampler
	classifier *Classifier
	limits     Limits
	logger     *slog.Logger
}

// NewPipeline wires the summariser stages around repo
func NewPipeline(repo Repository, classifier *Classifier, limits Limits) *Pipeline {
	limits = limits.withDefaults()
	if classifier == nil {
		classifier = NewDefaultClassifier()
	}
	return &Pipeline{
		repo:       repo,
		sampler:    NewSampler(repo, limits),
		classifier: classifier,
		limits:     limits,
		logger:     slog.Default().With("component", "pipeline"),
	}
}

// Result carries the assembled context plus what the pipeline saw on the way
type Result struct {
	Context       CommitContext
	Files         []git.ChangedFile
	Samples       []FileSample
	Omitted       int
	Labels        []AreaLabel
	SizeTruncated bool
}

// Run summarises commit sha. Failing to list the changed files is fatal;
// per-file failures are already isolated by the sampler.
func (p *Pipeline) Run(ctx context.Context, sha string, meta Metadata) (*Result, error) {
	files, err := p.repo.ChangedFiles(ctx, sha)
	if err != nil {
		return nil, fmt.Errorf("list changed files: %w", err)
	}

	labels := p.classifier.Classify(files)
	areaSummary := p.classifier.Summarize(files)

	samples, omitted := p.sampler.Sample(ctx, sha, files)
	diffText, cut := Truncate(Render(samples, omitted), p.limits.MaxDiffSize)

	p.logger.Info("commit summarised",
		"sha", shortSHA(sha),
		"files", len(files),
		"sampled", len(samples),
		"omitted", omitted,
		"diff_chars", CharCount(diffText),
		"size_truncated", cut,
	)

	return &Result{
		Context:       Assemble(meta.OriginalMessage, meta.BranchName, meta.RecentCommits, areaSummary, diffText),
		Files:         files,
		Samples:       samples,
		Omitted:       omitted,
		Labels:        labels,
		SizeTruncated: cut,
	}, nil
}

// BoundDiff applies the pipeline's character ceiling to a raw unified diff,
// the way pull request diffs are bounded without per-file sampling.
func (p *Pipeline) BoundDiff(diff string) string {
	bounded, _ := Truncate(diff, p.limits.MaxDiffSize)
	return bounded
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
