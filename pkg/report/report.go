// Package report renders scan results for human or machine consumption. The
// presentation order and shape belong here, not to the scanner.
package report

import (
	"io"

	"github.com/gemsec/gem-audit/pkg/scanner"
)

type Reporter interface {
	Report(results []scanner.Result) error
}

func New(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}
