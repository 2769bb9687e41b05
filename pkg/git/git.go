// Package git syncs the advisory database by driving the git binary. It is
// the only place the tool touches the network besides the optional GitHub
// staleness check.
package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	hashiver "github.com/hashicorp/go-version"
	"github.com/samber/oops"

	"github.com/gemsec/gem-audit/pkg/log"
	"github.com/gemsec/gem-audit/pkg/utils"
)

const (
	// DefaultURL is the upstream advisory repository.
	DefaultURL = "https://github.com/rubysec/ruby-advisory-db.git"

	// RepoDirName is the checkout directory inside the cache dir.
	RepoDirName = "ruby-advisory-db"
)

// Shallow clones keep the cache small; history is never needed.
const cloneDepth = "1"

var (
	minGitVersion = hashiver.Must(hashiver.NewVersion("2.0.0"))

	versionRe = regexp.MustCompile(`\d+(\.\d+)+`)
)

type Client struct {
	logger *log.Logger
}

func NewClient() Client {
	return Client{logger: log.WithPrefix("git")}
}

// CheckVersion verifies that a usable git binary is on PATH.
func (c Client) CheckVersion(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "git", "version").Output()
	if err != nil {
		return oops.Wrapf(err, "git binary not found")
	}

	v, err := parseVersion(string(out))
	if err != nil {
		return err
	}
	if v.LessThan(minGitVersion) {
		return oops.With("version", v.String()).Errorf("git %s or newer is required", minGitVersion)
	}

	c.logger.Debug("Found git", log.String("version", v.String()))
	return nil
}

// parseVersion extracts the dotted version from `git version` output, e.g.
// "git version 2.39.2 (Apple Git-143)".
func parseVersion(out string) (*hashiver.Version, error) {
	raw := versionRe.FindString(out)
	if raw == "" {
		return nil, oops.With("output", strings.TrimSpace(out)).Errorf("unrecognized git version output")
	}

	v, err := hashiver.NewVersion(raw)
	if err != nil {
		return nil, oops.With("version", raw).Wrapf(err, "failed to parse git version")
	}
	return v, nil
}

// Download clones the advisory repository into cacheDir, or pulls when a
// checkout already exists. It returns the checkout path.
func (c Client) Download(ctx context.Context, url, cacheDir string) (string, error) {
	eb := oops.With("url", url).With("cache_dir", cacheDir)

	repoDir := filepath.Join(cacheDir, RepoDirName)
	exists, err := utils.Exists(filepath.Join(repoDir, ".git"))
	if err != nil {
		return "", eb.Wrapf(err, "failed to stat checkout")
	}

	if exists {
		c.logger.Info("Updating advisory database", log.DirPath(repoDir))
		cmd := exec.CommandContext(ctx, "git", "-C", repoDir, "pull", "--quiet")
		if out, err := cmd.CombinedOutput(); err != nil {
			return "", eb.With("output", string(out)).Wrapf(err, "git pull failed")
		}
		return repoDir, nil
	}

	c.logger.Info("Cloning advisory database", log.String("url", url), log.DirPath(repoDir))
	cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", "--depth", cloneDepth, url, repoDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", eb.With("output", string(out)).Wrapf(err, "git clone failed")
	}
	return repoDir, nil
}

// HeadCommit returns the full SHA of the checkout's HEAD.
func (c Client) HeadCommit(ctx context.Context, repoDir string) (string, error) {
	out, err := exec.CommandContext(ctx, "git", "-C", repoDir, "rev-parse", "HEAD").Output()
	if err != nil {
		return "", oops.With("dir", repoDir).Wrapf(err, "git rev-parse failed")
	}
	return strings.TrimSpace(string(out)), nil
}
