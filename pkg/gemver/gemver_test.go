package gemver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemsec/gem-audit/pkg/gemver"
)

func TestNewVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{
			name:    "release",
			version: "1.2.3",
		},
		{
			name:    "pre-release",
			version: "4.0.0.beta1",
		},
		{
			name:    "single segment",
			version: "3",
		},
		{
			name:    "garbage",
			version: "not-a-version",
			wantErr: gemver.ErrMalformedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gemver.NewVersion(tt.version)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, got.String())
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.9", "2.0", -1},
		{"2.3.1", "2.3", 1},
		{"2.0.0.beta1", "2.0.0", -1}, // pre-release orders before the release
		{"2.0.0.beta1", "2.0.0.beta2", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, err := gemver.NewVersion(tt.a)
			require.NoError(t, err)
			b, err := gemver.NewVersion(tt.b)
			require.NoError(t, err)

			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, -tt.want, b.Compare(a))
		})
	}
}

// Distinct versions must be totally ordered and transitive.
func TestVersion_CompareTransitivity(t *testing.T) {
	raw := []string{"0.9", "1.0.0.alpha", "1.0", "1.0.1", "1.10", "2.0.0.rc1", "2.0"}

	versions := make([]gemver.Version, 0, len(raw))
	for _, r := range raw {
		v, err := gemver.NewVersion(r)
		require.NoError(t, err)
		versions = append(versions, v)
	}

	for i := 0; i < len(versions); i++ {
		for j := i + 1; j < len(versions); j++ {
			assert.Equal(t, -1, versions[i].Compare(versions[j]), "%s < %s", raw[i], raw[j])
			for k := j + 1; k < len(versions); k++ {
				assert.Equal(t, -1, versions[i].Compare(versions[k]), "%s < %s", raw[i], raw[k])
			}
		}
	}
}

func TestNewRequirement(t *testing.T) {
	tests := []struct {
		name        string
		requirement string
		wantErr     error
	}{
		{
			name:        "single comparator",
			requirement: ">= 1.5.4",
		},
		{
			name:        "conjunction",
			requirement: ">= 1.0, < 2.3.1",
		},
		{
			name:        "pessimistic",
			requirement: "~> 2.2.0",
		},
		{
			name:        "empty",
			requirement: "",
			wantErr:     gemver.ErrMalformedRequirement,
		},
		{
			name:        "operator without version",
			requirement: ">=",
			wantErr:     gemver.ErrMalformedRequirement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gemver.NewRequirement(tt.requirement)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRequirement_Check(t *testing.T) {
	tests := []struct {
		requirement string
		version     string
		want        bool
	}{
		{">= 2.0", "2.0", true},
		{">= 2.0", "1.9", false},
		{"< 1.0", "0.5", true},
		{"< 1.0", "1.0", false},
		{">= 1.0, < 2.3.1", "2.3.0", true},
		{">= 1.0, < 2.3.1", "2.3.1", false},
		{"~> 2.2.0", "2.2.9", true},
		{"~> 2.2.0", "2.3.0", false},
		{"!= 1.2.3", "1.2.3", false},
		{"= 1.2.3", "1.2.3", true},
	}

	for _, tt := range tests {
		t.Run(tt.requirement+" "+tt.version, func(t *testing.T) {
			req, err := gemver.NewRequirement(tt.requirement)
			require.NoError(t, err)
			v, err := gemver.NewVersion(tt.version)
			require.NoError(t, err)

			assert.Equal(t, tt.want, req.Check(v))
		})
	}
}

func TestRequirement_CheckZeroValue(t *testing.T) {
	v, err := gemver.NewVersion("1.0")
	require.NoError(t, err)

	// The zero requirement matches no version.
	var req gemver.Requirement
	assert.False(t, req.Check(v))
}
