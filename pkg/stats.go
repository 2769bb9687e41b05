package pkg

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/gemsec/gem-audit/pkg/db"
	"github.com/gemsec/gem-audit/pkg/github"
	"github.com/gemsec/gem-audit/pkg/metadata"
)

func stats(c *cli.Context) error {
	ctx := context.Background()
	dbDir := c.String("db-dir")

	store, err := db.Open(db.DefaultRoot(dbDir))
	if err != nil {
		return xerrors.Errorf("advisory database is not available, run `gem-audit update` first: %w", err)
	}

	size, err := store.Size()
	if err != nil {
		return xerrors.Errorf("failed to count advisories: %w", err)
	}
	gems, err := store.Gems()
	if err != nil {
		return xerrors.Errorf("failed to list gems: %w", err)
	}

	fmt.Printf("advisories:\t%d\n", size)
	fmt.Printf("gems:\t\t%d\n", len(gems))

	meta, err := metadata.NewClient(dbDir).Get()
	if err != nil {
		fmt.Println("last updated:\tnever (metadata missing)")
		return nil
	}
	fmt.Printf("last updated:\t%s\n", meta.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	if meta.Commit != "" {
		fmt.Printf("commit:\t\t%s\n", meta.Commit)
	}

	ghc := github.NewClient(ctx)
	if c.Bool("check-remote") {
		stale, sha, err := ghc.Stale(ctx, meta.Commit)
		if err != nil {
			return xerrors.Errorf("remote check failed: %w", err)
		}
		if stale {
			fmt.Printf("status:\t\tbehind upstream (%s), run `gem-audit update`\n", shortCommit(sha))
		} else {
			fmt.Println("status:\t\tup to date")
		}
		return nil
	}

	if ghc.StaleByAge(meta.UpdatedAt) {
		fmt.Println("status:\t\tpossibly stale, run `gem-audit update`")
	}
	return nil
}

// shortCommit abbreviates a commit SHA for display.
func shortCommit(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
