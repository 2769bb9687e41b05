// Package gemver wraps RubyGems version and requirement handling. A
// requirement is a comma-separated list of comparators (e.g. ">= 1.0, < 2.3.1")
// evaluated conjunctively, with the operators =, !=, >, >=, <, <= and the
// pessimistic operator ~>. Pre-release versions order before the corresponding
// release, and any two valid versions are comparable.
package gemver

import (
	"strings"

	gem "github.com/aquasecurity/go-gem-version"
	"golang.org/x/xerrors"
)

var (
	// ErrMalformedRequirement is returned when a requirement string cannot be
	// tokenized into operator and version.
	ErrMalformedRequirement = xerrors.New("malformed version requirement")

	// ErrMalformedVersion is returned when a version string cannot be parsed.
	ErrMalformedVersion = xerrors.New("malformed version")
)

// Version is a single RubyGems version. Immutable once constructed.
type Version struct {
	ver gem.Version
	raw string
}

func NewVersion(text string) (Version, error) {
	v, err := gem.NewVersion(text)
	if err != nil {
		return Version{}, xerrors.Errorf("parse version %q: %v: %w", text, err, ErrMalformedVersion)
	}
	return Version{ver: v, raw: text}, nil
}

func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1 depending on whether v orders before, equal to
// or after other.
func (v Version) Compare(other Version) int {
	return v.ver.Compare(other.ver)
}

// Requirement is a conjunctive set of version comparators. Immutable once
// constructed. The zero Requirement matches nothing.
type Requirement struct {
	constraints gem.Constraints
	raw         string
}

func NewRequirement(text string) (Requirement, error) {
	if strings.TrimSpace(text) == "" {
		return Requirement{}, xerrors.Errorf("empty requirement: %w", ErrMalformedRequirement)
	}
	c, err := gem.NewConstraints(text)
	if err != nil {
		return Requirement{}, xerrors.Errorf("parse requirement %q: %v: %w", text, err, ErrMalformedRequirement)
	}
	return Requirement{constraints: c, raw: text}, nil
}

// NewRequirements parses a list of requirement strings, failing on the first
// malformed entry.
func NewRequirements(texts []string) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(texts))
	for _, text := range texts {
		req, err := NewRequirement(text)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Check reports whether v satisfies every comparator in the requirement.
func (r Requirement) Check(v Version) bool {
	if r.raw == "" {
		return false
	}
	return r.constraints.Check(v.ver)
}

func (r Requirement) String() string {
	return r.raw
}
