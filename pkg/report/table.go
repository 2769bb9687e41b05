package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/gemsec/gem-audit/pkg/scanner"
	"github.com/gemsec/gem-audit/pkg/types"
)

type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(results []scanner.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(r.w, "No vulnerabilities found.")
		return nil
	}

	var matches, failures []scanner.Result
	for _, res := range results {
		switch res.Type {
		case scanner.ResultInsecureSource:
			fmt.Fprintf(r.w, "Insecure source URI found: %s\n", res.Source)
		case scanner.ResultUnpatchedGem:
			matches = append(matches, res)
		case scanner.ResultError:
			failures = append(failures, res)
		}
	}

	if len(matches) > 0 {
		w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GEM\tVERSION\tADVISORY\tSEVERITY\tTITLE")
		for _, res := range matches {
			adv := res.Advisory
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				res.Gem,
				res.Version,
				adv.ID(),
				types.ColorizeSeverity(adv.Severity),
				adv.Title,
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, res := range matches {
			if len(res.Advisory.PatchedVersions) > 0 {
				fmt.Fprintf(r.w, "%s: upgrade %s to %s\n",
					res.Advisory.ID(), res.Gem, quoteAll(res.Advisory.PatchedVersions))
			} else {
				fmt.Fprintf(r.w, "%s: remove or disable %s until a patch is available\n",
					res.Advisory.ID(), res.Gem)
			}
		}
	}

	for _, res := range failures {
		fmt.Fprintf(r.w, "%s %s could not be audited: %s\n", res.Gem, res.Version, res.Error)
	}

	fmt.Fprintln(r.w, color.New(color.FgRed).Sprint("Vulnerabilities found!"))
	return nil
}

func quoteAll(requirements []string) string {
	var out string
	for i, req := range requirements {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", req)
	}
	return out
}
