package git

import (
	"context"
	"strings"
)

// Status is the change kind git reports for a file in a commit
type Status string

const (
	StatusAdded       Status = "A"
	StatusModified    Status = "M"
	StatusDeleted     Status = "D"
	StatusRenamed     Status = "R"
	StatusTypeChanged Status = "T"
)

// String returns the human readable status name
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusTypeChanged:
		return "type changed"
	default:
		return "unknown"
	}
}

// ChangedFile is one entry of a commit's name-status listing.
// For renames Path is the destination path.
type ChangedFile struct {
	Status Status
	Path   string
}

// ChangedFiles lists the files touched by a commit in the order git reports them
func (r *Repository) ChangedFiles(ctx context.Context, sha string) ([]ChangedFile, error) {
	output, err := r.run(ctx, "show", "--name-status", "-z", "--format=", "--no-color", sha)
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(output), nil
}

// ParseNameStatus parses `git show --name-status -z` output, where every
// status and path is NUL-terminated and paths are never quoted. Renames and
// copies carry two paths after a scored status (R100). Only A, M, D, R and T
// entries are kept; for renames Path is the destination.
func ParseNameStatus(output string) []ChangedFile {
	var files []ChangedFile

	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); {
		// git may separate the empty header from the list with a newline
		field := strings.TrimSpace(fields[i])
		i++
		if field == "" {
			continue
		}

		paths := 1
		if field[0] == 'R' || field[0] == 'C' {
			paths = 2
		}
		if i+paths > len(fields) {
			break
		}
		path := fields[i+paths-1]
		i += paths

		status, ok := parseStatus(field)
		if !ok || path == "" {
			continue
		}
		files = append(files, ChangedFile{Status: status, Path: path})
	}

	return files
}

func parseStatus(field string) (Status, bool) {
	if field == "" {
		return "", false
	}

	switch Status(field[:1]) {
	case StatusAdded, StatusModified, StatusDeleted, StatusRenamed, StatusTypeChanged:
	default:
		return "", false
	}

	// Anything after the letter must be a similarity score
	for _, c := range field[1:] {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	return Status(field[:1]), true
}
