package github

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v57/github"
)

// PullRequestInfo is what the enhancer needs from a pull_request event
type PullRequestInfo struct {
	Number  int
	Body    string
	BaseSHA string
	HeadSHA string
	BaseRef string
	HeadRef string
}

// LoadPullRequestEvent reads the webhook payload the Actions runner writes
// to GITHUB_EVENT_PATH.
func LoadPullRequestEvent(path string) (*PullRequestInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("event path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event payload: %w", err)
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode event payload: %w", err)
	}

	pr := event.GetPullRequest()
	if pr == nil || pr.GetNumber() == 0 {
		return nil, fmt.Errorf("event payload has no pull request")
	}

	return &PullRequestInfo{
		Number:  pr.GetNumber(),
		Body:    pr.GetBody(),
		BaseSHA: pr.GetBase().GetSHA(),
		HeadSHA: pr.GetHead().GetSHA(),
		BaseRef: pr.GetBase().GetRef(),
		HeadRef: pr.GetHead().GetRef(),
	}, nil
}
