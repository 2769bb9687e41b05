// Package github queries the upstream advisory repository so the stats
// command can tell whether the local database has fallen behind.
package github

import (
	"context"
	"os"
	"time"

	"github.com/google/go-github/v28/github"
	"github.com/samber/oops"
	"golang.org/x/oauth2"
	"k8s.io/utils/clock"
)

const (
	owner  = "rubysec"
	repo   = "ruby-advisory-db"
	branch = "master"

	// StaleAfter is how old a local sync may be before stats flags it even
	// when the remote cannot be reached.
	StaleAfter = 7 * 24 * time.Hour
)

type RepositoryInterface interface {
	GetBranch(ctx context.Context, branch string) (*github.Branch, *github.Response, error)
}

type Repository struct {
	repository *github.RepositoriesService
	owner      string
	repoName   string
}

func (r Repository) GetBranch(ctx context.Context, branch string) (*github.Branch, *github.Response, error) {
	return r.repository.GetBranch(ctx, r.owner, r.repoName, branch)
}

type Client struct {
	Repository RepositoryInterface
	clock      clock.PassiveClock
}

type Option func(*Client)

func WithClock(c clock.PassiveClock) Option {
	return func(client *Client) {
		client.clock = c
	}
}

// NewClient builds a client for the upstream repository. GITHUB_TOKEN is used
// when present; anonymous access works within rate limits.
func NewClient(ctx context.Context, opts ...Option) Client {
	var httpClient = oauth2.NewClient(ctx, nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	gc := github.NewClient(httpClient)
	client := Client{
		Repository: Repository{
			repository: gc.Repositories,
			owner:      owner,
			repoName:   repo,
		},
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(&client)
	}
	return client
}

// LatestCommit returns the SHA and commit time of the remote HEAD.
func (c Client) LatestCommit(ctx context.Context) (string, time.Time, error) {
	b, _, err := c.Repository.GetBranch(ctx, branch)
	if err != nil {
		return "", time.Time{}, oops.With("repo", owner+"/"+repo).Wrapf(err, "failed to query branch")
	}

	commit := b.GetCommit()
	sha := commit.GetSHA()
	committedAt := commit.GetCommit().GetCommitter().GetDate()
	return sha, committedAt, nil
}

// Stale reports whether the local database at localCommit lags the remote
// HEAD, along with the remote SHA.
func (c Client) Stale(ctx context.Context, localCommit string) (bool, string, error) {
	sha, _, err := c.LatestCommit(ctx)
	if err != nil {
		return false, "", err
	}
	return sha != localCommit, sha, nil
}

// StaleByAge is the offline fallback: the local database is considered stale
// once its last sync is older than StaleAfter.
func (c Client) StaleByAge(updatedAt time.Time) bool {
	if updatedAt.IsZero() {
		return true
	}
	return c.clock.Now().Sub(updatedAt) > StaleAfter
}
