// Package db exposes a read-only view over a local checkout of the Ruby
// Advisory Database. The backing layout is one directory per gem, holding one
// YAML record per advisory.
package db

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/xerrors"

	"github.com/gemsec/gem-audit/pkg/advisory"
	"github.com/gemsec/gem-audit/pkg/gemver"
	"github.com/gemsec/gem-audit/pkg/log"
	"github.com/gemsec/gem-audit/pkg/utils"
)

// ErrNotADirectory is returned by Open when the database root is missing or
// not a directory.
var ErrNotADirectory = xerrors.New("not a directory")

const repoDirName = "ruby-advisory-db"

// DefaultRoot locates the gem advisory tree inside a synced database checkout.
func DefaultRoot(cacheDir string) string {
	return filepath.Join(cacheDir, repoDirName, "gems")
}

// Store reads advisories from a directory tree. It holds no state beyond the
// root path: every enumeration re-reads the directory, so a database resync
// between calls is observed by the next call. A resync concurrent with a
// single enumeration gives no atomicity guarantee.
type Store struct {
	root   string
	logger *log.Logger
}

// Open validates that root is a readable directory. Record contents are not
// validated here; they are decoded lazily during enumeration.
func Open(root string) (*Store, error) {
	eb := oops.With("root", root)

	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		return nil, eb.Wrapf(ErrNotADirectory, "invalid database root")
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, eb.Wrapf(err, "unreadable database root")
	}

	return &Store{
		root:   root,
		logger: log.WithPrefix("db"),
	}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Walk decodes every advisory under the root in directory order and passes it
// to fn. A record that fails to decode or validate is skipped with a warning;
// it never aborts the walk.
func (s *Store) Walk(fn func(adv *advisory.Advisory, path string) error) error {
	return s.walk(s.root, fn)
}

func (s *Store) walk(dir string, fn func(adv *advisory.Advisory, path string) error) error {
	return utils.FileWalk(dir, func(r io.Reader, path string) error {
		if !isRecord(path) {
			return nil
		}

		adv, err := advisory.Parse(r)
		if err != nil {
			s.logger.Warn("Skipping invalid advisory record", log.FilePath(path), log.Err(err))
			return nil
		}
		return fn(adv, path)
	})
}

// Advisories returns every valid advisory across all gems, re-reading the
// directory tree on each call.
func (s *Store) Advisories() ([]*advisory.Advisory, error) {
	var advisories []*advisory.Advisory
	err := s.Walk(func(adv *advisory.Advisory, _ string) error {
		advisories = append(advisories, adv)
		return nil
	})
	if err != nil {
		return nil, oops.With("root", s.root).Wrapf(err, "failed to enumerate advisories")
	}
	return advisories, nil
}

// AdvisoriesFor returns the advisories of a single gem, in directory order.
// An unknown gem yields an empty slice, not an error.
func (s *Store) AdvisoriesFor(gemName string) ([]*advisory.Advisory, error) {
	dir := filepath.Join(s.root, gemName)
	if ok, err := utils.Exists(dir); err != nil {
		return nil, oops.With("dir", dir).Wrapf(err, "failed to stat gem directory")
	} else if !ok {
		return nil, nil
	}

	var advisories []*advisory.Advisory
	err := s.walk(dir, func(adv *advisory.Advisory, _ string) error {
		advisories = append(advisories, adv)
		return nil
	})
	if err != nil {
		return nil, oops.With("dir", dir).Wrapf(err, "failed to enumerate gem advisories")
	}
	return advisories, nil
}

// CheckDependency returns the advisories of the named gem that the given
// version is vulnerable to. The version string must parse as a gem version.
func (s *Store) CheckDependency(name, version string) ([]*advisory.Advisory, error) {
	v, err := gemver.NewVersion(version)
	if err != nil {
		return nil, oops.With("gem", name).With("version", version).Wrapf(err, "failed to parse dependency version")
	}

	advisories, err := s.AdvisoriesFor(name)
	if err != nil {
		return nil, err
	}

	var matched []*advisory.Advisory
	for _, adv := range advisories {
		if adv.Vulnerable(v) {
			matched = append(matched, adv)
		}
	}
	return matched, nil
}

// Size counts advisory record files without decoding them.
func (s *Store) Size() (int, error) {
	var n int
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isRecord(path) {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, oops.With("root", s.root).Wrapf(err, "failed to count advisories")
	}
	return n, nil
}

// Gems returns the sorted list of gem names with at least one record file.
func (s *Store) Gems() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, oops.With("root", s.root).Wrapf(err, "failed to list gem directories")
	}

	var gems []string
	for _, e := range entries {
		if e.IsDir() {
			gems = append(gems, e.Name())
		}
	}
	sort.Strings(gems)
	return gems, nil
}

func isRecord(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
