package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

func TestClassifierSummarize(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name: "no files",
			want: "Areas changed: Root level or single file changes.",
		},
		{
			name:  "directory mapping",
			paths: []string{"sources/twitch.js"},
			want:  "Areas changed: Platform Integrations",
		},
		{
			name:  "exact file mapping",
			paths: []string{"dock.html"},
			want:  "Areas changed: Consolidated Chat Dashboard and Overlay UI",
		},
		{
			name:  "unmapped falls back to directories",
			paths: []string{"random/unmapped/file.css"},
			want:  "Areas changed: random/unmapped",
		},
		{
			name:  "root level unmapped file",
			paths: []string{"custom.js"},
			want:  "Areas changed: Root level or single file changes.",
		},
		{
			name:  "fallback lists three directories then ellipsis",
			paths: []string{"a/x.css", "b/y.css", "a/z.css", "c/w.css", "d/v.css"},
			want:  "Areas changed: a, b, c, ...",
		},
		{
			name:  "labels deduplicated in first seen order",
			paths: []string{"themes/dark.css", "sources/youtube.js", "themes/light.css"},
			want:  "Areas changed: Theming, Platform Integrations",
		},
		{
			name:  "tts and api keywords both fire",
			paths: []string{"lib/tts-api.js"},
			want:  "Areas changed: TTS Module, API Handling",
		},
		{
			name:  "directory rule and keyword accumulate",
			paths: []string{"sources/api_bridge.js"},
			want:  "Areas changed: Platform Integrations, API Handling",
		},
	}

	classifier := NewDefaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Summarize(modified(tt.paths...)))
		})
	}
}

func TestClassifierExactMatchIsExclusive(t *testing.T) {
	classifier := NewClassifier(DefaultRules([]AreaMapping{
		{Key: "tts-api.js", Label: "Speech Bridge"},
	}))

	labels := classifier.Classify(modified("tts-api.js"))
	assert.Equal(t, []AreaLabel{"Speech Bridge"}, labels)
}

func TestClassifierGlobRules(t *testing.T) {
	classifier := NewClassifier(DefaultRules(DefaultAreaMappings,
		GlobRule("**/*.md", "Documentation"),
		GlobRule("[", "Broken Pattern"),
	))

	labels := classifier.Classify([]git.ChangedFile{
		{Status: git.StatusAdded, Path: "docs/guide/setup.md"},
		{Status: git.StatusModified, Path: "themes/readme.md"},
	})
	assert.Equal(t, []AreaLabel{"Documentation", AreaTheming}, labels)
}

func TestClassifierKeywordsAreCaseSensitive(t *testing.T) {
	labels := NewDefaultClassifier().Classify(modified("docs/TTS.md", "lib/API.js"))
	assert.Empty(t, labels)
}
