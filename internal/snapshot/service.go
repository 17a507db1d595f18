// Package snapshot implements the persistence codec for the ledger: it
// serializes ledger state to the JSON save-file document and reconstructs
// ledger state from one, rejecting documents whose chain fails validation.
//
// Where the bytes live is delegated to a Storage backend; the codec itself
// never touches the filesystem.
package snapshot

import (
	"context"
	"errors"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/logger"
)

// Storage persists and retrieves encoded save-file documents by name.
// Implementations decide what a name means (a filesystem path, a database
// key). I/O failures are returned as-is; they are the caller's IOFailure
// boundary, distinct from document corruption.
type Storage interface {
	// WriteDocument stores the encoded document under the given name,
	// overwriting any previous document with that name.
	WriteDocument(ctx context.Context, name string, data []byte) error

	// ReadDocument retrieves the document stored under the given name.
	ReadDocument(ctx context.Context, name string) ([]byte, error)
}

// Service saves and loads ledger state through the configured Storage.
type Service interface {
	// Save encodes the ledger's current state and writes it under name.
	Save(ctx context.Context, name string) error

	// Load reads the document under name, validates the reconstructed chain,
	// and replaces the ledger's state with it. Malformed documents and
	// chains failing validation surface ErrCorruptSaveFile; the ledger is
	// left untouched in both cases.
	Load(ctx context.Context, name string) error
}

// service is the concrete implementation of the Service interface.
type service struct {
	ledger  ledger.Service
	storage Storage
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a snapshot service binding the given ledger to a storage
// backend.
func New(led ledger.Service, storage Storage) *service {
	return &service{
		ledger:  led,
		storage: storage,
	}
}

// Save encodes the ledger's current state and writes it under name.
func (s *service) Save(ctx context.Context, name string) error {
	snap := s.ledger.Snapshot(ctx)

	data, err := encode(snap)
	if err != nil {
		return err
	}

	if err := s.storage.WriteDocument(ctx, name, data); err != nil {
		return err
	}

	logger.Info(ctx, "ledger state saved",
		"snapshot.name", name,
		"snapshot.blocks", len(snap.Blocks),
		"snapshot.pending", len(snap.Pending),
	)

	return nil
}

// Load reads the document under name and restores the ledger from it.
func (s *service) Load(ctx context.Context, name string) error {
	data, err := s.storage.ReadDocument(ctx, name)
	if err != nil {
		return err
	}

	snap, err := decode(data)
	if err != nil {
		return err
	}

	if err := s.ledger.Restore(ctx, snap); err != nil {
		return errors.Join(ErrCorruptSaveFile, err)
	}

	logger.Info(ctx, "ledger state loaded",
		"snapshot.name", name,
		"snapshot.blocks", len(snap.Blocks),
		"snapshot.pending", len(snap.Pending),
	)

	return nil
}
