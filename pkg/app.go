package pkg

import (
	"github.com/urfave/cli"

	"github.com/gemsec/gem-audit/pkg/git"
	"github.com/gemsec/gem-audit/pkg/utils"
)

func NewApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "gem-audit"
	app.Version = version
	app.Usage = "Audit Gemfile.lock against the Ruby Advisory Database"

	app.Commands = []cli.Command{
		{
			Name:   "update",
			Usage:  "download or update the local advisory database",
			Action: update,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "db-dir",
					Usage: "advisory database directory",
					Value: utils.CacheDir(),
				},
				cli.StringFlag{
					Name:  "url",
					Usage: "advisory repository URL",
					Value: git.DefaultURL,
				},
			},
		},
		{
			Name:      "check",
			Usage:     "audit a project's Gemfile.lock",
			ArgsUsage: "[project_dir]",
			Action:    check,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "db-dir",
					Usage: "advisory database directory",
					Value: utils.CacheDir(),
				},
				cli.StringFlag{
					Name:  "file, f",
					Usage: "path to the lockfile (defaults to <project_dir>/Gemfile.lock)",
				},
				cli.StringFlag{
					Name:  "format",
					Usage: "output format (table, json)",
					Value: "table",
				},
				cli.StringSliceFlag{
					Name:  "ignore, i",
					Usage: "advisory IDs to ignore (repeatable)",
				},
			},
		},
		{
			Name:   "stats",
			Usage:  "show local advisory database statistics",
			Action: stats,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "db-dir",
					Usage: "advisory database directory",
					Value: utils.CacheDir(),
				},
				cli.BoolFlag{
					Name:  "check-remote",
					Usage: "compare the local database against the upstream repository",
				},
			},
		},
	}

	return app
}
