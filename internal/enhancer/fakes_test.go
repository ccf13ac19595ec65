package enhancer

import (
	"context"
	"fmt"
	"sync"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

type fakeSource struct {
	head       string
	headErr    error
	message    string
	branch     string
	branchErr  error
	recent     []string
	recentErr  error
	recentBase []string
	files      []git.ChangedFile
	rangeDiff  string
	rangeErr   error
	rangeArgs  [2]string
}

func (f *fakeSource) HeadCommit(ctx context.Context) (string, error) {
	return f.head, f.headErr
}

func (f *fakeSource) CommitMessage(ctx context.Context, sha string) (string, error) {
	return f.message, nil
}

func (f *fakeSource) ChangedFiles(ctx context.Context, sha string) ([]git.ChangedFile, error) {
	return f.files, nil
}

func (f *fakeSource) FileDiff(ctx context.Context, sha, path string) (string, error) {
	return fmt.Sprintf("diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n@@ -1 +1 @@\n-old\n+new", path, path, path, path), nil
}

func (f *fakeSource) MediaType(ctx context.Context, sha string, file git.ChangedFile) (string, error) {
	return "text/plain; charset=utf-8", nil
}

func (f *fakeSource) CurrentBranch(ctx context.Context) (string, error) {
	return f.branch, f.branchErr
}

func (f *fakeSource) RecentSubjects(ctx context.Context, baseRef string, limit int) ([]string, error) {
	f.recentBase = append(f.recentBase, baseRef)
	return f.recent, f.recentErr
}

func (f *fakeSource) RangeDiff(ctx context.Context, base, head string) (string, error) {
	f.rangeArgs = [2]string{base, head}
	return f.rangeDiff, f.rangeErr
}

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *fakeGenerator) Model() string { return "fake-model" }

type fakeWriter struct {
	messages []string
	err      error
}

func (w *fakeWriter) Rewrite(ctx context.Context, message string) error {
	w.messages = append(w.messages, message)
	return w.err
}

type fakeUpdater struct {
	calls []string
	err   error
}

func (u *fakeUpdater) UpdateDescription(ctx context.Context, owner, repo string, number int, body string) error {
	u.calls = append(u.calls, fmt.Sprintf("%s/%s#%d:%s", owner, repo, number, body))
	return u.err
}
