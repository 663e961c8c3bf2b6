package datastore

import (
	"embed"
	"io/fs"
)

//go:embed data/*.json
var embeddedFiles embed.FS

// EmbeddedDataset returns the sample dataset compiled into the binary. It is
// used when no dataset path is configured and by tests that need a known
// fixture.
func EmbeddedDataset() fs.FS {
	sub, err := fs.Sub(embeddedFiles, "data")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
