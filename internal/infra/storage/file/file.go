// Package file stores ledger save-file documents as plain files, with the
// document name interpreted as a filesystem path. By convention save files
// use the .json extension; the storage does not enforce it.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"
)

type client struct{}

// NewClient creates a filesystem-backed document storage.
func NewClient() *client {
	return &client{}
}

// WriteDocument writes the document to the path given by name, creating or
// truncating the file.
func (c *client) WriteDocument(ctx context.Context, name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}

	return nil
}

// ReadDocument reads the document from the path given by name.
func (c *client) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}

	return data, nil
}

// Compile-time assertion to ensure *client satisfies the snapshot.Storage interface
var _ snapshot.Storage = (*client)(nil)
