package lockfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemsec/gem-audit/pkg/lockfile"
)

const sampleLockfile = `GIT
  remote: git://github.com/rails/arel.git
  revision: 5a62a4a3a7ae520b0d954e4c5f0083c906a4361b
  specs:
    arel (9.0.0)

GEM
  remote: http://rubygems.org/
  specs:
    actionview (5.2.2)
      activesupport (= 5.2.2)
      builder (~> 3.1)
    activesupport (5.2.2)
      concurrent-ruby (~> 1.0, >= 1.0.2)
    nokogiri (1.10.1-x86-mingw32)
    rack (2.0.6)

PATH
  remote: ../internal-gem
  specs:
    internal-gem (0.1.0)

PLATFORMS
  ruby

DEPENDENCIES
  actionview (~> 5.2)
  rack

BUNDLED WITH
   1.17.1
`

func TestParse(t *testing.T) {
	lf, err := lockfile.Parse(strings.NewReader(sampleLockfile))
	require.NoError(t, err)

	assert.Equal(t, []lockfile.Dependency{
		{Name: "arel", Version: "9.0.0"},
		{Name: "actionview", Version: "5.2.2"},
		{Name: "activesupport", Version: "5.2.2"},
		{Name: "nokogiri", Version: "1.10.1"}, // platform suffix stripped
		{Name: "rack", Version: "2.0.6"},
		{Name: "internal-gem", Version: "0.1.0"},
	}, lf.Dependencies)

	assert.Equal(t, []string{
		"git://github.com/rails/arel.git",
		"http://rubygems.org/",
		"../internal-gem",
	}, lf.Sources)
}

func TestParse_PlatformAndPrereleaseVersions(t *testing.T) {
	tests := []struct {
		name     string
		resolved string
		want     string
	}{
		{"plain", "1.10.1", "1.10.1"},
		{"cpu and os platform", "1.10.1-x86-mingw32", "1.10.1"},
		{"os-only platform", "1.10.1-java", "1.10.1"},
		{"arm darwin platform", "1.13.6-arm64-darwin", "1.13.6"},
		{"dash pre-release kept", "1.0.0-beta", "1.0.0-beta"},
		{"dash pre-release with number kept", "2.0.0-rc1", "2.0.0-rc1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "GEM\n  remote: https://rubygems.org/\n  specs:\n    nokogiri (" + tt.resolved + ")\n"
			lf, err := lockfile.Parse(strings.NewReader(src))
			require.NoError(t, err)
			require.Len(t, lf.Dependencies, 1)
			assert.Equal(t, tt.want, lf.Dependencies[0].Version)
		})
	}
}

func TestLockfile_InsecureSources(t *testing.T) {
	lf, err := lockfile.Parse(strings.NewReader(sampleLockfile))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"git://github.com/rails/arel.git",
		"http://rubygems.org/",
	}, lf.InsecureSources())
}

func TestParse_TransitiveRequirementsAreNotDependencies(t *testing.T) {
	lf, err := lockfile.Parse(strings.NewReader(sampleLockfile))
	require.NoError(t, err)

	for _, dep := range lf.Dependencies {
		assert.NotEqual(t, "builder", dep.Name)
		assert.NotEqual(t, "concurrent-ruby", dep.Name)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := lockfile.ParseFile(t.TempDir() + "/Gemfile.lock")
	require.Error(t, err)
}
