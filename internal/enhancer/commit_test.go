package enhancer

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/enhance-commits/internal/git"
	"github.com/rohankatakam/enhance-commits/internal/llm"
	"github.com/rohankatakam/enhance-commits/internal/llm/prompts"
	"github.com/rohankatakam/enhance-commits/internal/summary"
)

func newSource() *fakeSource {
	return &fakeSource{
		head:    "0123456789abcdef",
		message: "fix stuff",
		branch:  "feature/kick",
		recent:  []string{"add kick", "wire kick"},
		files: []git.ChangedFile{
			{Status: git.StatusModified, Path: "background.js"},
			{Status: git.StatusAdded, Path: "sources/kick.js"},
		},
	}
}

func newFlow(src *fakeSource, gen llm.Generator, writer MessageWriter) *CommitFlow {
	pipeline := summary.NewPipeline(src, nil, summary.DefaultLimits())
	return NewCommitFlow(src, pipeline, gen, writer, CommitOptions{
		Project:       prompts.Project{Name: "Social Stream Ninja", Context: "* context"},
		DefaultBranch: "main",
		Remote:        "origin",
	})
}

func TestCommitFlowRun(t *testing.T) {
	src := newSource()
	gen := &fakeGenerator{reply: "  feat(kick): add Kick chat source\n\n- new source\n"}
	writer := &fakeWriter{}

	outcome, err := newFlow(src, gen, writer).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef", outcome.SHA)
	assert.Equal(t, "fix stuff", outcome.Original)
	assert.Equal(t, "feat(kick): add Kick chat source\n\n- new source", outcome.Enhanced)
	assert.True(t, outcome.Rewritten)
	assert.Equal(t, []string{outcome.Enhanced}, writer.messages)
	assert.Equal(t, []string{"origin/main"}, src.recentBase)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "`feature/kick`")
	assert.Contains(t, prompt, "Areas changed: Extension Core Logic and Message Routing, Platform Integrations")
	assert.Contains(t, prompt, "    - add kick\n    - wire kick")
	assert.Contains(t, prompt, "=== M: background.js ===")
	assert.Contains(t, prompt, "=== A: sources/kick.js ===")
	assert.Contains(t, prompt, `Original commit message: "fix stuff"`)
}

func TestCommitFlowDryRun(t *testing.T) {
	gen := &fakeGenerator{reply: "docs: clarify"}

	outcome, err := newFlow(newSource(), gen, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "docs: clarify", outcome.Enhanced)
	assert.False(t, outcome.Rewritten)
}

func TestCommitFlowTrunkBranchesSkipHistory(t *testing.T) {
	for _, branch := range []string{"main", "master"} {
		t.Run(branch, func(t *testing.T) {
			src := newSource()
			src.branch = branch

			prepared, err := newFlow(src, &fakeGenerator{}, nil).Prepare(context.Background())
			require.NoError(t, err)
			assert.Empty(t, src.recentBase, "history is not queried")
			assert.Empty(t, prepared.Result.Context.RecentCommitSubjects)
			assert.Contains(t, prepared.Prompt, "(N/A or first commit)")
		})
	}
}

func TestCommitFlowBranchFailureFallsBackToUnknown(t *testing.T) {
	src := newSource()
	src.branchErr = stderrors.New("not a git repository")

	prepared, err := newFlow(src, &fakeGenerator{}, nil).Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "unknown", prepared.Result.Context.BranchName)
	assert.Empty(t, src.recentBase)
}

func TestCommitFlowHistoryFailureIsNotFatal(t *testing.T) {
	src := newSource()
	src.recentErr = stderrors.New("no merge base")

	prepared, err := newFlow(src, &fakeGenerator{}, nil).Prepare(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prepared.Result.Context.RecentCommitSubjects)
}

func TestCommitFlowRecentCommitsCapped(t *testing.T) {
	src := newSource()
	src.recent = []string{"a", "b", "c", "d"}

	prepared, err := newFlow(src, &fakeGenerator{}, nil).Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, prepared.Result.Context.RecentCommitSubjects)
}

func TestCommitFlowFailures(t *testing.T) {
	t.Run("head unresolvable", func(t *testing.T) {
		src := newSource()
		src.headErr = stderrors.New("ambiguous argument HEAD")
		_, err := newFlow(src, &fakeGenerator{}, nil).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolve HEAD")
	})

	t.Run("model failure leaves commit alone", func(t *testing.T) {
		writer := &fakeWriter{}
		_, err := newFlow(newSource(), &fakeGenerator{err: stderrors.New("quota exceeded")}, writer).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "enhance commit message")
		assert.Empty(t, writer.messages)
	})

	t.Run("empty reply leaves commit alone", func(t *testing.T) {
		writer := &fakeWriter{}
		_, err := newFlow(newSource(), &fakeGenerator{reply: "\n \n"}, writer).Run(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
		assert.Empty(t, writer.messages)
	})

	t.Run("rewrite failure", func(t *testing.T) {
		writer := &fakeWriter{err: stderrors.New("force push: rejected")}
		outcome, err := newFlow(newSource(), &fakeGenerator{reply: "msg"}, writer).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "update commit message")
		assert.False(t, outcome.Rewritten)
	})
}

func TestIsTrunkHonoursDefaultBranch(t *testing.T) {
	flow := NewCommitFlow(newSource(), nil, nil, nil, CommitOptions{DefaultBranch: "develop"})
	assert.True(t, flow.isTrunk("develop"))
	assert.True(t, flow.isTrunk("main"))
	assert.True(t, flow.isTrunk("unknown"))
	assert.False(t, flow.isTrunk("feature/x"))
}
