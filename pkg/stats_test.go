package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortCommit(t *testing.T) {
	tests := []struct {
		name string
		sha  string
		want string
	}{
		{"full sha", "5a62a4a3a7ae520b0d954e4c5f0083c906a4361b", "5a62a4a3a7ae"},
		{"already short", "5a62a4a", "5a62a4a"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortCommit(tt.sha))
		})
	}
}
