// Package prompts holds the text sent to the language model
package prompts

import (
	"fmt"

	"github.com/rohankatakam/enhance-commits/internal/summary"
)

// Project describes the repository the commits belong to
type Project struct {
	Name    string
	Context string // markdown bullet list
}

// CommitUser builds the commit enhancement prompt
func CommitUser(project Project, c summary.CommitContext) string {
	return fmt.Sprintf(`As a developer assistant, please create an improved, detailed git commit message based on the original message, the code changes shown in the diff, and the provided context about the repository.

**Project Context: %[1]s**

%[2]s
* **Branch Context:** You are currently on branch `+"`%[3]s`"+`
* %[4]s
* **Recent Steps on Branch:**%[5]s

**Input:**

Original commit message: "%[6]s"

Diff of changes:
`+"```"+`
%[7]s
`+"```"+`

**Instructions for Generating the Commit Message:**

Please generate a professional, detailed commit message that:
1.  Summarizes what was changed in a clear first line (< 72 chars), relevant to the %[1]s project.
2.  Uses the project context to better understand the purpose and impact of the code changes.
3.  Adds bullets for key changes, explaining *what* was modified (e.g., which feature, integration, or component).
4.  Explains *why* changes were made if possible, linking back to project goals.
5.  Mentions key files or components that were modified.
6.  Maintains a professional tone suitable for a project like %[1]s.

Keep your response short and focused on just the enhanced commit message itself, without any explanations or additional text introducing it.`,
		project.Name,
		project.Context,
		c.BranchName,
		c.AreaSummary,
		recentSteps(c),
		c.OriginalMessage,
		c.DiffText,
	)
}

// recentSteps places an empty history on the heading line and a list below it
func recentSteps(c summary.CommitContext) string {
	if len(c.RecentCommitSubjects) == 0 {
		return " " + c.RecentSteps()
	}
	return "\n" + c.RecentSteps()
}

// PRUser builds the pull request description prompt. diff is expected to be
// bounded already.
func PRUser(description, diff string) string {
	return fmt.Sprintf(`As a developer assistant, please create an improved, detailed pull request description based on the original description and the code changes shown in the diff.

Original PR description: "%s"

Diff of changes:
`+"```"+`
%s
`+"```"+`

Please generate a professional, detailed PR description that:
1. Summarizes the purpose of the PR
2. Lists main changes and features
3. Provides context on implementation decisions
4. Mentions any potential concerns or future improvements
5. Has a clear, organized structure

Keep your response focused on just the enhanced PR description without any explanations or additional text.`,
		description,
		diff,
	)
}
