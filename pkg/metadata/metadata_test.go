package metadata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/gemsec/gem-audit/pkg/metadata"
)

func TestClient_UpdateAndGet(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	client := metadata.NewClient(dir, metadata.WithClock(clocktesting.NewFakeClock(now)))

	require.NoError(t, client.Update("0123abcd", 912))

	got, err := client.Get()
	require.NoError(t, err)
	assert.Equal(t, metadata.Metadata{
		UpdatedAt:     now,
		Commit:        "0123abcd",
		AdvisoryCount: 912,
	}, got)
}

func TestClient_GetMissing(t *testing.T) {
	client := metadata.NewClient(t.TempDir())
	_, err := client.Get()
	require.Error(t, err)
}
