package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/enhance-commits/internal/enhancer"
	"github.com/rohankatakam/enhance-commits/internal/errors"
)

var (
	contextOutput     string
	contextWithPrompt bool
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show what the model would be told about the latest commit",
	Long: `Summarise HEAD the same way "commit" does and print the result. The
model is never called and the repository is never modified, so no API key
is needed.

Output formats: text (default), json, yaml.`,
	RunE: runContext,
}

func init() {
	contextCmd.Flags().StringVarP(&contextOutput, "output", "o", "text", "output format: text, json or yaml")
	contextCmd.Flags().BoolVar(&contextWithPrompt, "prompt", false, "include the full prompt")
}

type contextFile struct {
	Status    string `json:"status" yaml:"status"`
	Path      string `json:"path" yaml:"path"`
	Sampled   bool   `json:"sampled" yaml:"sampled"`
	Truncated bool   `json:"truncated" yaml:"truncated"`
}

type contextReport struct {
	SHA             string        `json:"sha" yaml:"sha"`
	Branch          string        `json:"branch" yaml:"branch"`
	OriginalMessage string        `json:"original_message" yaml:"original_message"`
	RecentCommits   []string      `json:"recent_commits" yaml:"recent_commits"`
	Areas           []string      `json:"areas" yaml:"areas"`
	AreaSummary     string        `json:"area_summary" yaml:"area_summary"`
	Files           []contextFile `json:"files" yaml:"files"`
	Omitted         int           `json:"omitted" yaml:"omitted"`
	SizeTruncated   bool          `json:"size_truncated" yaml:"size_truncated"`
	Diff            string        `json:"diff" yaml:"diff"`
	Prompt          string        `json:"prompt,omitempty" yaml:"prompt,omitempty"`
}

func runContext(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}

	prepared, err := a.commitFlow(true).Prepare(ctx)
	if err != nil {
		return err
	}

	return renderContext(cmd.OutOrStdout(), newContextReport(prepared, contextWithPrompt), contextOutput)
}

func newContextReport(p *enhancer.Prepared, withPrompt bool) contextReport {
	res := p.Result
	sampled := make(map[string]bool, len(res.Samples))
	truncated := make(map[string]bool, len(res.Samples))
	for _, s := range res.Samples {
		sampled[s.Path] = true
		truncated[s.Path] = s.Truncated
	}

	report := contextReport{
		SHA:             p.SHA,
		Branch:          res.Context.BranchName,
		OriginalMessage: res.Context.OriginalMessage,
		RecentCommits:   res.Context.RecentCommitSubjects,
		AreaSummary:     res.Context.AreaSummary,
		Omitted:         res.Omitted,
		SizeTruncated:   res.SizeTruncated,
		Diff:            res.Context.DiffText,
	}
	for _, l := range res.Labels {
		report.Areas = append(report.Areas, string(l))
	}
	for _, f := range res.Files {
		report.Files = append(report.Files, contextFile{
			Status:    string(f.Status),
			Path:      f.Path,
			Sampled:   sampled[f.Path],
			Truncated: truncated[f.Path],
		})
	}
	if withPrompt {
		report.Prompt = p.Prompt
	}
	return report
}

func renderContext(w io.Writer, r contextReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		renderContextText(w, r)
		return nil
	default:
		return errors.ValidationErrorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func renderContextText(w io.Writer, r contextReport) {
	short := r.SHA
	if len(short) > 7 {
		short = short[:7]
	}

	fmt.Fprintf(w, "%s %s on %s\n", color.CyanString("Commit"), short, color.GreenString(r.Branch))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%s %q\n", color.HiBlackString("Message:"), r.OriginalMessage)
	fmt.Fprintf(w, "%s %s\n", color.HiBlackString("Areas:"), r.AreaSummary)

	if len(r.RecentCommits) > 0 {
		fmt.Fprintln(w, color.HiBlackString("Recent commits:"))
		for _, s := range r.RecentCommits {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	fmt.Fprintf(w, "%s %d\n", color.HiBlackString("Files:"), len(r.Files))
	for _, f := range r.Files {
		marker := " "
		switch {
		case f.Truncated:
			marker = color.YellowString("~")
		case f.Sampled:
			marker = color.GreenString("*")
		}
		fmt.Fprintf(w, "  %s %s %s\n", marker, f.Status, f.Path)
	}
	if r.Omitted > 0 {
		fmt.Fprintf(w, "  %s\n", color.HiBlackString("%d more not sampled", r.Omitted))
	}
	if r.SizeTruncated {
		fmt.Fprintln(w, color.YellowString("Diff cut at the size ceiling"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Diff)

	if r.Prompt != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.CyanString("Prompt"))
		fmt.Fprintln(w, strings.Repeat("─", 60))
		fmt.Fprintln(w, r.Prompt)
	}
}
