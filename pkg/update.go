package pkg

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
	pb "gopkg.in/cheggaaa/pb.v1"

	"github.com/gemsec/gem-audit/pkg/advisory"
	"github.com/gemsec/gem-audit/pkg/config"
	"github.com/gemsec/gem-audit/pkg/db"
	"github.com/gemsec/gem-audit/pkg/git"
	"github.com/gemsec/gem-audit/pkg/log"
	"github.com/gemsec/gem-audit/pkg/metadata"
	"github.com/gemsec/gem-audit/pkg/set"
)

func update(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.LoadDir(".")
	if err != nil {
		return xerrors.Errorf("config load failed: %w", err)
	}
	cacheDir := cfg.DatabaseDir(c.String("db-dir"), c.IsSet("db-dir"))
	url := cfg.DatabaseURL(c.String("url"), c.IsSet("url"))

	client := git.NewClient()
	if err := client.CheckVersion(ctx); err != nil {
		return xerrors.Errorf("git check failed: %w", err)
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Syncing advisory database..."
	s.Start()
	repoDir, err := client.Download(ctx, url, cacheDir)
	s.Stop()
	if err != nil {
		return xerrors.Errorf("database sync failed: %w", err)
	}

	commit, err := client.HeadCommit(ctx, repoDir)
	if err != nil {
		return xerrors.Errorf("failed to read database HEAD: %w", err)
	}

	valid, err := validate(cacheDir)
	if err != nil {
		return xerrors.Errorf("database validation failed: %w", err)
	}

	meta := metadata.NewClient(cacheDir)
	if err := meta.Update(commit, valid); err != nil {
		return xerrors.Errorf("failed to write metadata: %w", err)
	}

	log.Info("Advisory database updated", log.String("commit", commit), log.Int("advisories", valid))
	return nil
}

// validate walks the freshly synced tree once so broken records are reported
// at update time rather than at every later check. It returns the number of
// valid advisories.
func validate(cacheDir string) (int, error) {
	store, err := db.Open(db.DefaultRoot(cacheDir))
	if err != nil {
		return 0, err
	}

	total, err := store.Size()
	if err != nil {
		return 0, err
	}

	gems := set.NewOrdered[string]()
	bar := pb.StartNew(total)
	defer bar.Finish()

	var valid int
	err = store.Walk(func(adv *advisory.Advisory, _ string) error {
		bar.Increment()
		valid++
		gems.Append(adv.Gem)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if invalid := total - valid; invalid > 0 {
		log.Warn("Some advisory records are invalid and will be skipped",
			log.Int("invalid", invalid), log.Int("valid", valid))
	}
	log.Info("Validated advisory database",
		log.Int("advisories", valid), log.Int("gems", gems.Size()))
	return valid, nil
}
