// Package summary turns a commit into a bounded, labelled description of its
// changes: which files were touched, a sampled diff that fits a fixed
// character budget, and the project areas involved.
package summary

import (
	"context"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

// Repository is the subset of repository queries the summariser depends on.
// *git.Repository satisfies it; tests substitute an in-memory fake.
type Repository interface {
	HeadCommit(ctx context.Context) (string, error)
	CommitMessage(ctx context.Context, sha string) (string, error)
	ChangedFiles(ctx context.Context, sha string) ([]git.ChangedFile, error)
	FileDiff(ctx context.Context, sha, path string) (string, error)
	MediaType(ctx context.Context, sha string, file git.ChangedFile) (string, error)
}

const (
	// DefaultMaxDiffSize is the character ceiling of the assembled diff text
	DefaultMaxDiffSize = 20000
	// DefaultMaxFilesToSample caps how many files get an individual sample
	DefaultMaxFilesToSample = 5
	// DefaultSampleLinesPerFile is the per-file line count above which a diff
	// collapses to head and tail
	DefaultSampleLinesPerFile = 200
)

// Limits bounds how much of a commit ends up in the diff text
type Limits struct {
	MaxDiffSize        int `yaml:"max_diff_size" json:"max_diff_size" mapstructure:"max_diff_size"`
	MaxFilesToSample   int `yaml:"max_files_to_sample" json:"max_files_to_sample" mapstructure:"max_files_to_sample"`
	SampleLinesPerFile int `yaml:"sample_lines_per_file" json:"sample_lines_per_file" mapstructure:"sample_lines_per_file"`
}

// DefaultLimits returns the stock budget: 20000 characters, 5 files, 200 lines per file
func DefaultLimits() Limits {
	return Limits{
		MaxDiffSize:        DefaultMaxDiffSize,
		MaxFilesToSample:   DefaultMaxFilesToSample,
		SampleLinesPerFile: DefaultSampleLinesPerFile,
	}
}

// withDefaults replaces non-positive limits with the stock values
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxDiffSize <= 0 {
		l.MaxDiffSize = d.MaxDiffSize
	}
	if l.MaxFilesToSample <= 0 {
		l.MaxFilesToSample = d.MaxFilesToSample
	}
	if l.SampleLinesPerFile <= 0 {
		l.SampleLinesPerFile = d.SampleLinesPerFile
	}
	return l
}
