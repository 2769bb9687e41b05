// Package metadata tracks when and from what commit the local advisory
// database was last synced.
package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
	"k8s.io/utils/clock"
)

const metadataFile = "metadata.json"

type Metadata struct {
	UpdatedAt     time.Time
	Commit        string `json:",omitempty"`
	AdvisoryCount int    `json:",omitempty"`
}

// Client reads and writes the metadata file beside the database checkout.
type Client struct {
	filePath string
	clock    clock.PassiveClock
}

type Option func(*Client)

func WithClock(c clock.PassiveClock) Option {
	return func(client *Client) {
		client.clock = c
	}
}

func NewClient(dbDir string, opts ...Option) Client {
	client := Client{
		filePath: Path(dbDir),
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(&client)
	}
	return client
}

func Path(dbDir string) string {
	return filepath.Join(dbDir, metadataFile)
}

func (c Client) Get() (Metadata, error) {
	eb := oops.With("file_path", c.filePath)

	f, err := os.Open(c.filePath)
	if err != nil {
		return Metadata{}, eb.Wrapf(err, "file open error")
	}
	defer f.Close()

	var meta Metadata
	if err = json.NewDecoder(f).Decode(&meta); err != nil {
		return Metadata{}, eb.Wrapf(err, "json decode error")
	}
	return meta, nil
}

// Update stamps the metadata with the current time and writes it out.
func (c Client) Update(commit string, advisoryCount int) error {
	eb := oops.With("file_path", c.filePath)

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0o755); err != nil {
		return eb.Wrapf(err, "mkdir error")
	}

	f, err := os.Create(c.filePath)
	if err != nil {
		return eb.Wrapf(err, "file create error")
	}
	defer f.Close()

	meta := Metadata{
		UpdatedAt:     c.clock.Now().UTC(),
		Commit:        commit,
		AdvisoryCount: advisoryCount,
	}
	if err = json.NewEncoder(f).Encode(&meta); err != nil {
		return eb.Wrapf(err, "json encode error")
	}
	return nil
}
