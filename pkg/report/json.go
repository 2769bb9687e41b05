package report

import (
	"encoding/json"
	"io"

	"github.com/gemsec/gem-audit/pkg/scanner"
)

type JSONReporter struct {
	w io.Writer
}

func (r *JSONReporter) Report(results []scanner.Result) error {
	type output struct {
		Count   int              `json:"count"`
		Results []scanner.Result `json:"results"`
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Count:   len(results),
		Results: results,
	})
}
