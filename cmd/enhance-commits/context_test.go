package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/enhance-commits/internal/enhancer"
	"github.com/rohankatakam/enhance-commits/internal/git"
	"github.com/rohankatakam/enhance-commits/internal/summary"
)

func samplePrepared() *enhancer.Prepared {
	return &enhancer.Prepared{
		SHA: "0123456789abcdef",
		Result: &summary.Result{
			Context: summary.CommitContext{
				OriginalMessage:      "fix",
				BranchName:           "feature/kick",
				RecentCommitSubjects: []string{"add kick"},
				AreaSummary:          "Platform Integrations",
				DiffText:             "=== A: sources/kick.js ===\n+kick",
			},
			Files: []git.ChangedFile{
				{Status: git.StatusAdded, Path: "sources/kick.js"},
				{Status: git.StatusModified, Path: "README.md"},
			},
			Samples: []summary.FileSample{{Path: "sources/kick.js", Status: git.StatusAdded, Truncated: true}},
			Omitted: 1,
			Labels:  []summary.AreaLabel{"Platform Integrations"},
		},
		Prompt: "PROMPT",
	}
}

func TestNewContextReport(t *testing.T) {
	r := newContextReport(samplePrepared(), false)

	assert.Equal(t, "feature/kick", r.Branch)
	assert.Equal(t, []string{"Platform Integrations"}, r.Areas)
	require.Len(t, r.Files, 2)
	assert.Equal(t, contextFile{Status: "A", Path: "sources/kick.js", Sampled: true, Truncated: true}, r.Files[0])
	assert.Equal(t, contextFile{Status: "M", Path: "README.md"}, r.Files[1])
	assert.Empty(t, r.Prompt)

	assert.Equal(t, "PROMPT", newContextReport(samplePrepared(), true).Prompt)
}

func TestRenderContext(t *testing.T) {
	color.NoColor = true
	r := newContextReport(samplePrepared(), true)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderContext(&buf, r, "json"))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "0123456789abcdef", decoded["sha"])
		assert.Equal(t, "PROMPT", decoded["prompt"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderContext(&buf, r, "yaml"))

		var decoded contextReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, r, decoded)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderContext(&buf, r, "text"))

		out := buf.String()
		assert.Contains(t, out, "Commit 0123456 on feature/kick")
		assert.Contains(t, out, "  ~ A sources/kick.js")
		assert.Contains(t, out, "    M README.md")
		assert.Contains(t, out, "1 more not sampled")
		assert.Contains(t, out, "  - add kick")
		assert.Contains(t, out, "PROMPT")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, renderContext(&bytes.Buffer{}, r, "xml"))
	})
}
