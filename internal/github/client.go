package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	"github.com/rohankatakam/enhance-commits/internal/errors"
)

// Client wraps the GitHub API client with rate limiting
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new GitHub client with rate limiting. apiURL points at
// a GitHub Enterprise or test server and may be empty.
func NewClient(token string, rateLimit int, apiURL string) (*Client, error) {
	client := github.NewClient(nil).WithAuthToken(token)

	if apiURL != "" {
		base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
		client.BaseURL = base
	}

	if rateLimit <= 0 {
		rateLimit = 1
	}

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:      slog.Default().With("component", "github"),
	}, nil
}

// UpdateDescription replaces the body of pull request number
func (c *Client) UpdateDescription(ctx context.Context, owner, repo string, number int, body string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	pr, _, err := c.client.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{
		Body: github.String(body),
	})
	if err != nil {
		return errors.NetworkErrorf(err, "update pull request #%d", number).
			WithContext("repo", owner+"/"+repo)
	}

	c.logger.Info("pull request description updated",
		"repo", owner+"/"+repo,
		"number", pr.GetNumber(),
		"body_length", len(pr.GetBody()),
	)
	return nil
}
