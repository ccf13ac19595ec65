package summary

import (
	"context"
	"fmt"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

// fakeRepo is an in-memory Repository keyed by file path
type fakeRepo struct {
	head      string
	message   string
	files     []git.ChangedFile
	listErr   error
	diffs     map[string]string
	media     map[string]string
	diffErrs  map[string]error
	mediaErrs map[string]error
	diffCalls map[string]int
}

func newFakeRepo(files ...git.ChangedFile) *fakeRepo {
	return &fakeRepo{
		head:      "abc1234def5678",
		message:   "original message",
		files:     files,
		diffs:     make(map[string]string),
		media:     make(map[string]string),
		diffErrs:  make(map[string]error),
		mediaErrs: make(map[string]error),
		diffCalls: make(map[string]int),
	}
}

func (f *fakeRepo) HeadCommit(ctx context.Context) (string, error) {
	return f.head, nil
}

func (f *fakeRepo) CommitMessage(ctx context.Context, sha string) (string, error) {
	return f.message, nil
}

func (f *fakeRepo) ChangedFiles(ctx context.Context, sha string) ([]git.ChangedFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files, nil
}

func (f *fakeRepo) FileDiff(ctx context.Context, sha, path string) (string, error) {
	f.diffCalls[path]++
	if err := f.diffErrs[path]; err != nil {
		return "", err
	}
	if diff, ok := f.diffs[path]; ok {
		return diff, nil
	}
	return fmt.Sprintf("diff --git a/%s b/%s\nindex 1..2 100644\n--- a/%s\n+++ b/%s\n@@ -1 +1 @@\n-old\n+new", path, path, path, path), nil
}

func (f *fakeRepo) MediaType(ctx context.Context, sha string, file git.ChangedFile) (string, error) {
	if err := f.mediaErrs[file.Path]; err != nil {
		return "", err
	}
	if mt, ok := f.media[file.Path]; ok {
		return mt, nil
	}
	return "text/plain; charset=utf-8", nil
}
