package pkg

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/gemsec/gem-audit/pkg/config"
	"github.com/gemsec/gem-audit/pkg/db"
	"github.com/gemsec/gem-audit/pkg/lockfile"
	"github.com/gemsec/gem-audit/pkg/report"
	"github.com/gemsec/gem-audit/pkg/scanner"
)

func check(c *cli.Context) error {
	projectDir := c.Args().First()
	if projectDir == "" {
		projectDir = "."
	}

	cfg, err := config.LoadDir(projectDir)
	if err != nil {
		return xerrors.Errorf("config load failed: %w", err)
	}

	dbDir := cfg.DatabaseDir(c.String("db-dir"), c.IsSet("db-dir"))

	// A missing database is fatal and distinct from a clean audit; it means
	// the audit could not run at all.
	store, err := db.Open(db.DefaultRoot(dbDir))
	if err != nil {
		return xerrors.Errorf("advisory database is not available, run `gem-audit update` first: %w", err)
	}

	lockPath := c.String("file")
	if lockPath == "" {
		lockPath = filepath.Join(projectDir, lockfile.FileName)
	}
	lf, err := lockfile.ParseFile(lockPath)
	if err != nil {
		return xerrors.Errorf("lockfile parse failed: %w", err)
	}

	ignore := append(cfg.Ignore, c.StringSlice("ignore")...)
	s := scanner.New(store, scanner.WithIgnore(ignore...))
	results := s.Scan(lf.Dependencies, lf.InsecureSources())

	r := report.New(c.String("format"), os.Stdout)
	if err := r.Report(results); err != nil {
		return xerrors.Errorf("report failed: %w", err)
	}

	if len(results) > 0 {
		return cli.NewExitError("", 1)
	}
	return nil
}
