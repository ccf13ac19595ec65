package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		max       int
		wantCut   bool
		wantChars int
	}{
		{name: "empty", text: "", max: 10},
		{name: "under ceiling", text: strings.Repeat("a", 19999), max: DefaultMaxDiffSize, wantChars: 19999},
		{name: "at ceiling", text: strings.Repeat("a", 20000), max: DefaultMaxDiffSize, wantChars: 20000},
		{name: "over ceiling", text: strings.Repeat("b", 25000), max: DefaultMaxDiffSize, wantCut: true, wantChars: 20000},
		{name: "multibyte under ceiling by runes", text: strings.Repeat("é", 15000), max: DefaultMaxDiffSize, wantChars: 15000},
		{name: "multibyte over ceiling", text: strings.Repeat("日", 20001), max: DefaultMaxDiffSize, wantCut: true, wantChars: 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := Truncate(tt.text, tt.max)
			assert.Equal(t, tt.wantCut, cut)

			if !tt.wantCut {
				assert.Equal(t, tt.text, got)
				return
			}

			assert.True(t, strings.HasSuffix(got, SizeTruncationMarker))
			body := strings.TrimSuffix(got, SizeTruncationMarker)
			assert.Equal(t, tt.wantChars, CharCount(body))
			assert.True(t, strings.HasPrefix(tt.text, body), "truncated text must be a prefix of the input")
		})
	}
}

func TestTruncateIsSuffixCut(t *testing.T) {
	first := "\n\n=== M: a.js ===\n" + strings.Repeat("x", 19000)
	second := "\n\n=== M: b.js ===\n" + strings.Repeat("y", 5000)

	got, cut := Truncate(first+second, DefaultMaxDiffSize)
	assert.True(t, cut)
	assert.Len(t, got, DefaultMaxDiffSize+len(SizeTruncationMarker))
	assert.Equal(t, (first + second)[:DefaultMaxDiffSize], strings.TrimSuffix(got, SizeTruncationMarker))
	assert.Contains(t, got, "=== M: b.js ===")
}
