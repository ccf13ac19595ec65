package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

const (
	// diffHeaderLines is how many leading diff lines survive sampling untouched
	diffHeaderLines = 4
	// TruncatedLinesMarker separates the head and tail of a sampled diff
	TruncatedLinesMarker = "...[truncated]..."
)

// FileSample is the bounded text standing in for one file's change
type FileSample struct {
	Path      string     `json:"path" yaml:"path"`
	Status    git.Status `json:"status" yaml:"status"`
	Text      string     `json:"text" yaml:"text"`
	Truncated bool       `json:"truncated" yaml:"truncated"`
}

// Sampler produces per-file samples for the first few files of a commit
type Sampler struct {
	repo   Repository
	limits Limits
	logger *slog.Logger
}

// NewSampler creates a Sampler reading diffs from repo
func NewSampler(repo Repository, limits Limits) *Sampler {
	return &Sampler{
		repo:   repo,
		limits: limits.withDefaults(),
		logger: slog.Default().With("component", "sampler"),
	}
}

// Sample samples at most MaxFilesToSample files in order and returns the
// samples along with how many files were left out.
func (s *Sampler) Sample(ctx context.Context, sha string, files []git.ChangedFile) ([]FileSample, int) {
	selected := files
	omitted := 0
	if len(files) > s.limits.MaxFilesToSample {
		selected = files[:s.limits.MaxFilesToSample]
		omitted = len(files) - s.limits.MaxFilesToSample
	}

	samples := make([]FileSample, 0, len(selected))
	for _, file := range selected {
		samples = append(samples, s.sampleFile(ctx, sha, file))
	}

	s.logger.Debug("files sampled", "sampled", len(samples), "omitted", omitted)
	return samples, omitted
}

// sampleFile never fails: errors become an inline placeholder for this file only
func (s *Sampler) sampleFile(ctx context.Context, sha string, file git.ChangedFile) FileSample {
	sample := FileSample{Path: file.Path, Status: file.Status}

	mediaType, err := s.repo.MediaType(ctx, sha, file)
	if err != nil {
		return s.errorSample(sample, err)
	}
	if !git.IsTextual(mediaType) {
		sample.Text = fmt.Sprintf("[Binary file %s changed]", file.Path)
		return sample
	}

	switch file.Status {
	case git.StatusDeleted:
		sample.Text = fmt.Sprintf("File %s was deleted", file.Path)
	case git.StatusRenamed:
		sample.Text = fmt.Sprintf("File was renamed to %s", file.Path)
	default:
		diff, err := s.repo.FileDiff(ctx, sha, file.Path)
		if err != nil {
			return s.errorSample(sample, err)
		}
		sample.Text, sample.Truncated = SampleDiff(diff, s.limits.SampleLinesPerFile)
	}

	return sample
}

func (s *Sampler) errorSample(sample FileSample, err error) FileSample {
	s.logger.Warn("failed to sample file", "path", sample.Path, "status", sample.Status.String(), "error", err)
	sample.Text = fmt.Sprintf("[Error processing %s: %s]", sample.Path, err.Error())
	return sample
}

// SampleDiff keeps a diff whole when it has at most maxLines lines. Longer
// diffs keep the 4 header lines, the next maxLines/2 lines, a marker line and
// the final maxLines/2 lines.
func SampleDiff(diff string, maxLines int) (string, bool) {
	lines := strings.Split(diff, "\n")
	if len(lines) <= maxLines {
		return diff, false
	}

	half := maxLines / 2
	header := min(diffHeaderLines, len(lines))
	headEnd := min(header+half, len(lines))

	var sb strings.Builder
	sb.WriteString(strings.Join(lines[:header], "\n"))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(lines[header:headEnd], "\n"))
	sb.WriteString("\n" + TruncatedLinesMarker + "\n")
	sb.WriteString(strings.Join(lines[len(lines)-half:], "\n"))

	return sb.String(), true
}

// Delimiter is the line that opens a file's section in the rendered diff text
func Delimiter(status git.Status, path string) string {
	return fmt.Sprintf("=== %s: %s ===", string(status), path)
}

// Render concatenates samples in order, each opened by its delimiter line,
// and appends a single notice when files were omitted.
func Render(samples []FileSample, omitted int) string {
	var sb strings.Builder

	for _, sample := range samples {
		sb.WriteString("\n\n")
		sb.WriteString(Delimiter(sample.Status, sample.Path))
		sb.WriteString("\n")
		sb.WriteString(sample.Text)
	}

	if omitted > 0 {
		sb.WriteString(OmittedNotice(omitted))
	}

	return sb.String()
}

// OmittedNotice is appended once when more files changed than were sampled
func OmittedNotice(omitted int) string {
	return fmt.Sprintf("\n\n[...and %d more files not shown...]", omitted)
}
