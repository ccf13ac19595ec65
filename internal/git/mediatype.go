package git

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rohankatakam/enhance-commits/internal/errors"
)

// MediaType sniffs the MIME type of a changed file's content at a commit.
// Deleted files are read from the commit's first parent, since the blob no
// longer exists at the commit itself.
func (r *Repository) MediaType(ctx context.Context, sha string, file ChangedFile) (string, error) {
	rev := sha
	if file.Status == StatusDeleted {
		rev = sha + "^"
	}

	cmd := exec.CommandContext(ctx, "git", "cat-file", "blob", rev+":"+file.Path)
	cmd.Dir = r.path

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", errors.GitError(err, "open git cat-file output")
	}
	if err := cmd.Start(); err != nil {
		return "", errors.GitError(err, "start git cat-file")
	}

	mtype, detectErr := mimetype.DetectReader(stdout)
	// Drain the rest so git is never blocked writing to a full pipe
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		return "", errors.GitErrorf(err, "git cat-file failed for %s", file.Path).
			WithContext("rev", rev)
	}
	if detectErr != nil {
		return "", errors.FileSystemError(detectErr, "detect media type")
	}

	r.logger.Debug("media type detected", "path", file.Path, "mime", mtype.String())
	return mtype.String(), nil
}

// IsTextual reports whether a MIME type describes text content. Types such as
// application/json count as text because their detection parent is text/plain.
func IsTextual(mediaType string) bool {
	base, _, _ := strings.Cut(mediaType, ";")
	base = strings.TrimSpace(base)

	mtype := mimetype.Lookup(base)
	if mtype == nil {
		return strings.HasPrefix(base, "text/")
	}

	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
