// Package lockfile parses Gemfile.lock manifests into the flat list of
// resolved gems and their sources.
package lockfile

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/samber/oops"
)

// FileName is the manifest name looked up inside an audited directory.
const FileName = "Gemfile.lock"

// Dependency is one resolved gem from the lockfile.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Lockfile is the parsed manifest: resolved gems plus the remote sources they
// were fetched from, both in file order.
type Lockfile struct {
	Dependencies []Dependency
	Sources      []string
}

// specLine matches a resolved gem at the top indent level of a specs block,
// e.g. "    actionview (5.2.2)". Deeper-indented lines are the gem's own
// requirements and are not resolved versions.
var specLine = regexp.MustCompile(`^ {4}(\S+) \(([^)]+)\)$`)

func ParseFile(path string) (*Lockfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.With("file_path", path).Wrapf(err, "failed to open lockfile")
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a Gemfile.lock. Sections are introduced by unindented headers
// (GEM, GIT, PATH, ...); "remote:" lines carry sources, and specs blocks
// carry resolved gems. Unrecognized lines are ignored.
func Parse(r io.Reader) (*Lockfile, error) {
	var lf Lockfile
	var section string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, " ") {
			section = line
			continue
		}

		switch section {
		case "GEM", "GIT", "PATH":
		default:
			continue
		}

		if remote, ok := strings.CutPrefix(line, "  remote: "); ok {
			lf.Sources = append(lf.Sources, strings.TrimSpace(remote))
			continue
		}

		if m := specLine.FindStringSubmatch(line); m != nil {
			lf.Dependencies = append(lf.Dependencies, Dependency{
				Name:    m[1],
				Version: normalizeVersion(m[2]),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.Wrapf(err, "failed to read lockfile")
	}

	return &lf, nil
}

// InsecureSources returns the remotes fetched over cleartext protocols, in
// file order without duplicates.
func (l *Lockfile) InsecureSources() []string {
	seen := make(map[string]struct{})
	var insecure []string
	for _, src := range l.Sources {
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "git://") {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		insecure = append(insecure, src)
	}
	return insecure
}

// platformToken matches the first segment of a Gem::Platform suffix such as
// "x86-mingw32" or "java". A dash can also introduce a pre-release
// ("1.0.0-beta"), so only known platform names trigger stripping.
var platformToken = regexp.MustCompile(`^(?:x86|x86_64|x64|universal|arm|arm64|aarch64|ppc|ppc64|sparc|java|jruby|dalvik|dotnet|mswin32|mswin64|mswin|mingw32|mingw|darwin|linux|freebsd|aix|hpux|solaris)\b`)

// normalizeVersion strips a platform suffix such as "-x86-mingw32" from a
// resolved version.
func normalizeVersion(version string) string {
	if i := strings.Index(version, "-"); i > 0 && platformToken.MatchString(version[i+1:]) {
		return version[:i]
	}
	return version
}
