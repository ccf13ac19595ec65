package config

import (
	"os"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/errors"
)

// EventPullRequest is the GITHUB_EVENT_NAME of pull request workflows
const EventPullRequest = "pull_request"

// ActionsEnv is the part of the GitHub Actions runner environment the
// enhancer reads.
type ActionsEnv struct {
	EventName  string // GITHUB_EVENT_NAME
	EventPath  string // GITHUB_EVENT_PATH
	Repository string // GITHUB_REPOSITORY, "owner/name"
}

// LoadActionsEnv reads the runner variables from the process environment
func LoadActionsEnv() ActionsEnv {
	return ActionsEnv{
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:  os.Getenv("GITHUB_EVENT_PATH"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
	}
}

// IsPullRequest reports whether the workflow was triggered by a pull request
func (e ActionsEnv) IsPullRequest() bool {
	return e.EventName == EventPullRequest
}

// OwnerRepo splits Repository into owner and name
func (e ActionsEnv) OwnerRepo() (string, string, error) {
	owner, name, ok := strings.Cut(e.Repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", errors.ConfigErrorf("GITHUB_REPOSITORY must look like owner/name, got %q", e.Repository)
	}
	return owner, name, nil
}
