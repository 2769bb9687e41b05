package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "linux",
			output: "git version 2.39.2\n",
			want:   "2.39.2",
		},
		{
			name:   "macos",
			output: "git version 2.39.2 (Apple Git-143)\n",
			want:   "2.39.2",
		},
		{
			name:   "windows",
			output: "git version 2.39.2.windows.1\n",
			want:   "2.39.2",
		},
		{
			name:    "garbage",
			output:  "no such command\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseVersion(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}
