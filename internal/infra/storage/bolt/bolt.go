// Package bolt stores ledger save-file documents in a bbolt database. Every
// write is kept as an immutable revision keyed by UUIDv7, with a per-name
// pointer to the latest revision, so an autosave history survives restarts.
package bolt

import (
	"context"
	"errors"
	"fmt"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	// revisionsBucket holds document payloads keyed by revision id.
	revisionsBucket = "revisions"

	// latestBucket maps document names to their latest revision id.
	latestBucket = "latest"
)

// ErrDocumentNotFound is returned when no document has been stored under the
// requested name.
var ErrDocumentNotFound = errors.New("document not found")

type client struct {
	db *bolt.DB
}

// NewClient opens (or creates) the bbolt database at the given path and
// ensures the required buckets exist.
func NewClient(path string) (*client, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{revisionsBucket, latestBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing snapshot database: %w", err)
	}

	return &client{db: db}, nil
}

// Close releases the underlying database handle.
func (c *client) Close() error {
	return c.db.Close()
}

// WriteDocument stores the document as a new revision and points the name at it.
func (c *client) WriteDocument(ctx context.Context, name string, data []byte) error {
	revision := uuid.Must(uuid.NewV7()).String()

	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(revisionsBucket)).Put([]byte(revision), data); err != nil {
			return err
		}

		return tx.Bucket([]byte(latestBucket)).Put([]byte(name), []byte(revision))
	})
}

// ReadDocument retrieves the latest revision stored under the given name.
func (c *client) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	var data []byte

	err := c.db.View(func(tx *bolt.Tx) error {
		revision := tx.Bucket([]byte(latestBucket)).Get([]byte(name))
		if revision == nil {
			return fmt.Errorf("%w: %q", ErrDocumentNotFound, name)
		}

		payload := tx.Bucket([]byte(revisionsBucket)).Get(revision)
		if payload == nil {
			return fmt.Errorf("%w: revision %s for %q", ErrDocumentNotFound, revision, name)
		}

		data = append([]byte(nil), payload...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Compile-time assertion to ensure *client satisfies the snapshot.Storage interface
var _ snapshot.Storage = (*client)(nil)
