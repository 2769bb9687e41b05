// Package advisory models one record of the Ruby Advisory Database
// (https://github.com/rubysec/ruby-advisory-db).
package advisory

import (
	"fmt"
	"io"
	"strings"
	"time"

	gocvss31 "github.com/pandatix/go-cvss/31"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/gemsec/gem-audit/pkg/gemver"
	"github.com/gemsec/gem-audit/pkg/types"
)

// ErrInvalid is returned when a record is missing its identity fields or its
// title.
var ErrInvalid = xerrors.New("invalid advisory")

// RawAdvisory is the YAML shape of an advisory record on disk.
type RawAdvisory struct {
	Gem                string
	Cve                string
	Osvdb              string
	Ghsa               string
	Title              string
	Url                string
	Date               string
	Description        string
	Criticality        string
	CvssV2             float64  `yaml:"cvss_v2"`
	CvssV3             float64  `yaml:"cvss_v3"`
	PatchedVersions    []string `yaml:"patched_versions"`
	UnaffectedVersions []string `yaml:"unaffected_versions"`
	Related            Related
}

type Related struct {
	Cve []string
	Url []string
}

// Advisory is one vulnerability affecting one gem. Immutable after Load.
type Advisory struct {
	Gem         string `json:"gem"`
	CVE         string `json:"cve,omitempty"`
	OSVDB       string `json:"osvdb,omitempty"`
	GHSA        string `json:"ghsa,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`

	// Date is the disclosure date; the zero value means unknown.
	Date time.Time `json:"date,omitempty"`

	Criticality string         `json:"criticality,omitempty"`
	CvssV2      float64        `json:"cvss_v2,omitempty"`
	CvssV3      float64        `json:"cvss_v3,omitempty"`
	Severity    types.Severity `json:"severity"`

	PatchedVersions    []string `json:"patched_versions,omitempty"`
	UnaffectedVersions []string `json:"unaffected_versions,omitempty"`
	References         []string `json:"references,omitempty"`

	patched    []gemver.Requirement
	unaffected []gemver.Requirement
}

// Parse decodes one YAML record and validates it via Load.
func Parse(r io.Reader) (*Advisory, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("failed to read advisory: %w", err)
	}

	var raw RawAdvisory
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, xerrors.Errorf("failed to unmarshal YAML: %v: %w", err, ErrInvalid)
	}
	return Load(raw)
}

// Load validates a decoded record and compiles its version requirements.
func Load(raw RawAdvisory) (*Advisory, error) {
	if raw.Cve == "" && raw.Ghsa == "" && raw.Osvdb == "" {
		return nil, xerrors.Errorf("gem %q: no CVE, GHSA or OSVDB identifier: %w", raw.Gem, ErrInvalid)
	}
	if raw.Title == "" {
		return nil, xerrors.Errorf("gem %q: no title: %w", raw.Gem, ErrInvalid)
	}

	patched, err := gemver.NewRequirements(raw.PatchedVersions)
	if err != nil {
		return nil, xerrors.Errorf("gem %q: patched_versions: %w", raw.Gem, err)
	}
	unaffected, err := gemver.NewRequirements(raw.UnaffectedVersions)
	if err != nil {
		return nil, xerrors.Errorf("gem %q: unaffected_versions: %w", raw.Gem, err)
	}

	var date time.Time
	if raw.Date != "" {
		// Disclosure date is informational; a bad one is dropped, not fatal.
		date, _ = time.Parse("2006-01-02", raw.Date)
	}

	var references []string
	if raw.Url != "" {
		references = append(references, raw.Url)
	}
	references = append(references, raw.Related.Url...)

	return &Advisory{
		Gem:                raw.Gem,
		CVE:                raw.Cve,
		OSVDB:              raw.Osvdb,
		GHSA:               raw.Ghsa,
		Title:              raw.Title,
		Description:        raw.Description,
		URL:                raw.Url,
		Date:               date,
		Criticality:        raw.Criticality,
		CvssV2:             raw.CvssV2,
		CvssV3:             raw.CvssV3,
		Severity:           severity(raw.Criticality, raw.CvssV2, raw.CvssV3),
		PatchedVersions:    raw.PatchedVersions,
		UnaffectedVersions: raw.UnaffectedVersions,
		References:         references,
		patched:            patched,
		unaffected:         unaffected,
	}, nil
}

// ID returns the primary identifier with its scheme prefix, preferring
// CVE over GHSA over OSVDB. Identity keys deduplication, not match logic.
func (a *Advisory) ID() string {
	switch {
	case a.CVE != "":
		return fmt.Sprintf("CVE-%s", a.CVE)
	case a.GHSA != "":
		return fmt.Sprintf("GHSA-%s", a.GHSA)
	default:
		return fmt.Sprintf("OSVDB-%s", a.OSVDB)
	}
}

// Vulnerable reports whether the given version is affected. A version is
// vulnerable unless it matches any unaffected requirement or any patched
// requirement; with no requirements at all every version is vulnerable.
func (a *Advisory) Vulnerable(v gemver.Version) bool {
	for _, req := range a.unaffected {
		if req.Check(v) {
			return false
		}
	}
	for _, req := range a.patched {
		if req.Check(v) {
			return false
		}
	}
	return true
}

// severity derives the ordered severity. The record's own criticality label
// wins when present; otherwise the CVSS v3 qualitative scale applies when a
// v3 score exists, and v2 scores fall back to the v2 convention
// (low < 4.0 <= medium < 7.0 <= high).
func severity(criticality string, cvssV2, cvssV3 float64) types.Severity {
	if criticality != "" {
		name := strings.ToUpper(criticality)
		if name == "NONE" {
			return types.SeverityUnknown
		}
		if sev, err := types.NewSeverity(name); err == nil {
			return sev
		}
	}

	if cvssV3 > 0 {
		rating, err := gocvss31.Rating(cvssV3)
		if err != nil {
			return types.SeverityUnknown
		}
		if sev, err := types.NewSeverity(rating); err == nil {
			return sev
		}
		return types.SeverityUnknown
	}

	switch {
	case cvssV2 <= 0:
		return types.SeverityUnknown
	case cvssV2 < 4.0:
		return types.SeverityLow
	case cvssV2 < 7.0:
		return types.SeverityMedium
	default:
		return types.SeverityHigh
	}
}
