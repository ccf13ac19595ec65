package summary

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rohankatakam/enhance-commits/internal/git"
)

// AreaLabel names a project subsystem touched by a change
type AreaLabel string

const (
	AreaPlatformIntegrations AreaLabel = "Platform Integrations"
	AreaTheming              AreaLabel = "Theming"
	AreaDashboard            AreaLabel = "Consolidated Chat Dashboard and Overlay UI"
	AreaFeaturedOverlay      AreaLabel = "Featured Overlay UI"
	AreaExtensionCore        AreaLabel = "Extension Core Logic and Message Routing"
	AreaManifest             AreaLabel = "Extension Manifest"
	AreaTTS                  AreaLabel = "TTS Module"
	AreaAPI                  AreaLabel = "API Handling"
)

const (
	areasPrefix      = "Areas changed: "
	rootLevelSummary = "Root level or single file changes."
	maxFallbackDirs  = 3
)

// AreaMapping ties a file path or top-level directory name to a label
type AreaMapping struct {
	Key   string
	Label AreaLabel
}

// DefaultAreaMappings is the built-in path table. A key matches either a
// file's full path or its first path segment.
var DefaultAreaMappings = []AreaMapping{
	{Key: "sources", Label: AreaPlatformIntegrations},
	{Key: "themes", Label: AreaTheming},
	{Key: "dock.html", Label: AreaDashboard},
	{Key: "featured.html", Label: AreaFeaturedOverlay},
	{Key: "background.js", Label: AreaExtensionCore},
	{Key: "manifest.json", Label: AreaManifest},
}

// Rule is one (predicate, label) pair. An exclusive rule that matches stops
// evaluation of the remaining rules for that file.
type Rule struct {
	Label     AreaLabel
	Match     func(filePath string) bool
	Exclusive bool
}

// ExactPathRule matches a file whose full path equals p
func ExactPathRule(p string, label AreaLabel) Rule {
	return Rule{
		Label:     label,
		Match:     func(filePath string) bool { return filePath == p },
		Exclusive: true,
	}
}

// TopDirRule matches a file whose first path segment equals dir
func TopDirRule(dir string, label AreaLabel) Rule {
	return Rule{
		Label: label,
		Match: func(filePath string) bool {
			top, _, _ := strings.Cut(filePath, "/")
			return top == dir
		},
	}
}

// KeywordRule matches a file whose path contains keyword
func KeywordRule(keyword string, label AreaLabel) Rule {
	return Rule{
		Label: label,
		Match: func(filePath string) bool { return strings.Contains(filePath, keyword) },
	}
}

// GlobRule matches a file against a doublestar pattern such as "sources/**/*.js".
// Malformed patterns never match.
func GlobRule(pattern string, label AreaLabel) Rule {
	return Rule{
		Label: label,
		Match: func(filePath string) bool {
			ok, err := doublestar.Match(pattern, filePath)
			return err == nil && ok
		},
	}
}

// DefaultRules builds the stock rule order: exact paths, then top-level
// directories, then the given extra rules, then the tts/api keywords.
func DefaultRules(mappings []AreaMapping, extra ...Rule) []Rule {
	rules := make([]Rule, 0, 2*len(mappings)+len(extra)+2)
	for _, m := range mappings {
		rules = append(rules, ExactPathRule(m.Key, m.Label))
	}
	for _, m := range mappings {
		rules = append(rules, TopDirRule(m.Key, m.Label))
	}
	rules = append(rules, extra...)
	rules = append(rules,
		KeywordRule("tts", AreaTTS),
		KeywordRule("api", AreaAPI),
	)
	return rules
}

// Classifier maps changed files to project area labels
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier evaluating rules in order
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefaultClassifier uses DefaultRules over DefaultAreaMappings
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules(DefaultAreaMappings))
}

// Classify returns the deduplicated labels matched by any file, in the order
// they were first matched.
func (c *Classifier) Classify(files []git.ChangedFile) []AreaLabel {
	var labels []AreaLabel
	seen := make(map[AreaLabel]bool)

	for _, file := range files {
		for _, rule := range c.rules {
			if !rule.Match(file.Path) {
				continue
			}
			if !seen[rule.Label] {
				seen[rule.Label] = true
				labels = append(labels, rule.Label)
			}
			if rule.Exclusive {
				break
			}
		}
	}

	return labels
}

// Summarize renders the "Areas changed: ..." line. Without any label it falls
// back to the first three distinct non-root directories, and without those to
// a fixed root-level sentence.
func (c *Classifier) Summarize(files []git.ChangedFile) string {
	labels := c.Classify(files)
	if len(labels) > 0 {
		names := make([]string, len(labels))
		for i, l := range labels {
			names[i] = string(l)
		}
		return areasPrefix + strings.Join(names, ", ")
	}

	dirs := changedDirectories(files)
	if len(dirs) == 0 {
		return areasPrefix + rootLevelSummary
	}

	summary := areasPrefix + strings.Join(dirs[:min(len(dirs), maxFallbackDirs)], ", ")
	if len(dirs) > maxFallbackDirs {
		summary += ", ..."
	}
	return summary
}

// changedDirectories lists distinct parent directories in first-seen order
func changedDirectories(files []git.ChangedFile) []string {
	var dirs []string
	seen := make(map[string]bool)

	for _, file := range files {
		dir := path.Dir(file.Path)
		if dir == "." || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	return dirs
}
