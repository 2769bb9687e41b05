// Package scanner crosses a manifest's dependencies against the advisory
// database and collects audit results.
package scanner

import (
	"fmt"

	"github.com/gemsec/gem-audit/pkg/advisory"
	"github.com/gemsec/gem-audit/pkg/lockfile"
	"github.com/gemsec/gem-audit/pkg/log"
	"github.com/gemsec/gem-audit/pkg/set"
)

type ResultType string

const (
	// ResultInsecureSource flags a gem source fetched over a cleartext
	// protocol.
	ResultInsecureSource ResultType = "insecure_source"

	// ResultUnpatchedGem reports one advisory a dependency is vulnerable to.
	ResultUnpatchedGem ResultType = "unpatched_gem"

	// ResultError reports a dependency whose audit outcome is unknown, e.g.
	// because its declared version does not parse. It is not a match, and it
	// is not silence.
	ResultError ResultType = "error"
)

// Result is one finding of an audit run.
type Result struct {
	Type     ResultType         `json:"type"`
	Source   string             `json:"source,omitempty"`
	Gem      string             `json:"gem,omitempty"`
	Version  string             `json:"version,omitempty"`
	Advisory *advisory.Advisory `json:"advisory,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Store is the query surface the scanner needs from the advisory database.
type Store interface {
	CheckDependency(name, version string) ([]*advisory.Advisory, error)
}

type Scanner struct {
	store  Store
	ignore set.Set[string]
	logger *log.Logger
}

type Option func(*Scanner)

// WithIgnore suppresses matches whose advisory identifier is in ids.
func WithIgnore(ids ...string) Option {
	return func(s *Scanner) {
		s.ignore.Append(ids...)
	}
}

func New(store Store, opts ...Option) *Scanner {
	s := &Scanner{
		store:  store,
		ignore: set.New[string](),
		logger: log.WithPrefix("scan"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan audits the given dependencies. Results preserve insertion order:
// insecure sources first, then dependencies in input order, then advisories
// in store order. A dependency that cannot be checked yields a ResultError
// and never aborts the rest of the batch.
func (s *Scanner) Scan(deps []lockfile.Dependency, insecureSources []string) []Result {
	var results []Result

	for _, src := range insecureSources {
		results = append(results, Result{
			Type:   ResultInsecureSource,
			Source: src,
		})
	}

	for _, dep := range deps {
		results = append(results, s.checkDependency(dep)...)
	}
	return results
}

func (s *Scanner) checkDependency(dep lockfile.Dependency) []Result {
	advisories, err := s.store.CheckDependency(dep.Name, dep.Version)
	if err != nil {
		s.logger.Warn("Dependency could not be audited",
			log.String("gem", dep.Name), log.String("version", dep.Version), log.Err(err))
		return []Result{{
			Type:    ResultError,
			Gem:     dep.Name,
			Version: dep.Version,
			Error:   fmt.Sprintf("check %s %s: %v", dep.Name, dep.Version, err),
		}}
	}

	// The same advisory can surface twice from the backing data; report it
	// once per dependency, keyed by identity.
	seen := set.New[string]()

	var results []Result
	for _, adv := range advisories {
		if seen.Contains(adv.ID()) {
			continue
		}
		seen.Append(adv.ID())

		if s.ignored(adv) {
			s.logger.Debug("Ignoring advisory", log.String("id", adv.ID()))
			continue
		}

		results = append(results, Result{
			Type:     ResultUnpatchedGem,
			Gem:      dep.Name,
			Version:  dep.Version,
			Advisory: adv,
		})
	}
	return results
}

// ignored matches the ignore list against every identifier the advisory
// carries, so either "CVE-2019-5418" or "GHSA-xxxx" suppresses one record.
func (s *Scanner) ignored(adv *advisory.Advisory) bool {
	if s.ignore.Size() == 0 {
		return false
	}
	for _, id := range identifiers(adv) {
		if s.ignore.Contains(id) {
			return true
		}
	}
	return false
}

func identifiers(adv *advisory.Advisory) []string {
	var ids []string
	if adv.CVE != "" {
		ids = append(ids, "CVE-"+adv.CVE)
	}
	if adv.GHSA != "" {
		ids = append(ids, "GHSA-"+adv.GHSA)
	}
	if adv.OSVDB != "" {
		ids = append(ids, "OSVDB-"+adv.OSVDB)
	}
	return ids
}
