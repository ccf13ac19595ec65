package main

import (
	"context"

	"github.com/rohankatakam/enhance-commits/internal/config"
	"github.com/rohankatakam/enhance-commits/internal/enhancer"
	"github.com/rohankatakam/enhance-commits/internal/errors"
	"github.com/rohankatakam/enhance-commits/internal/git"
	"github.com/rohankatakam/enhance-commits/internal/github"
	"github.com/rohankatakam/enhance-commits/internal/llm"
	"github.com/rohankatakam/enhance-commits/internal/llm/prompts"
	"github.com/rohankatakam/enhance-commits/internal/summary"
)

// app holds the components shared by the commands
type app struct {
	repo     *git.Repository
	pipeline *summary.Pipeline
	gen      llm.Generator
}

// newApp wires the repository and summary pipeline. The model client is only
// created when withModel is set, so offline commands need no API key.
func newApp(ctx context.Context, withModel bool) (*app, error) {
	repo := git.NewRepository(".")
	if err := repo.DetectGitRepo(ctx); err != nil {
		return nil, err
	}

	a := &app{
		repo:     repo,
		pipeline: summary.NewPipeline(repo, summary.NewClassifier(cfg.ClassifierRules()), cfg.Limits),
	}

	if withModel {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		gen, err := llm.NewGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.gen = gen
	}
	return a, nil
}

func (a *app) commitFlow(dryRun bool) *enhancer.CommitFlow {
	var writer enhancer.MessageWriter
	if !dryRun {
		writer = git.NewRewriter(a.repo, cfg.Git.Remote, cfg.Git.Push)
	}
	return enhancer.NewCommitFlow(a.repo, a.pipeline, a.gen, writer, enhancer.CommitOptions{
		Project:       prompts.Project{Name: cfg.Project.Name, Context: cfg.Project.Context},
		DefaultBranch: cfg.Git.DefaultBranch,
		Remote:        cfg.Git.Remote,
	})
}

func (a *app) prFlow(env config.ActionsEnv, dryRun bool) (*enhancer.PRFlow, error) {
	var updater enhancer.DescriptionUpdater
	if !dryRun {
		if cfg.GitHub.Token == "" {
			return nil, errors.ConfigError("GITHUB_TOKEN is required to update pull request descriptions")
		}
		client, err := github.NewClient(cfg.GitHub.Token, cfg.GitHub.RateLimit, cfg.GitHub.APIURL)
		if err != nil {
			return nil, err
		}
		updater = client
	}
	return enhancer.NewPRFlow(a.repo, a.pipeline.BoundDiff, a.gen, updater, env), nil
}
