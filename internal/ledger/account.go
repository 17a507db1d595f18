package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownAccount is returned when an operation references an account
	// name that was never registered.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrAccountExists is returned when creating an account whose name is
	// already registered.
	ErrAccountExists = errors.New("account already exists")

	// ErrReservedAccount is returned when creating an account with a reserved
	// or empty name.
	ErrReservedAccount = errors.New("reserved account name")
)

// CreateAccount registers a new account name.
func (s *service) CreateAccount(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, SystemAccount) || strings.EqualFold(name, GenesisAccount) {
		return fmt.Errorf("%w: %q", ErrReservedAccount, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accounts.Contains(name) {
		return fmt.Errorf("%w: %q", ErrAccountExists, name)
	}

	s.accounts.Add(name)
	return nil
}

// ResolveAccount reports whether the given account name is registered.
func (s *service) ResolveAccount(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accounts.Contains(name)
}

// ListAccounts returns all registered account names in sorted order.
func (s *service) ListAccounts(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.accounts.ToSlice()
	sort.Strings(names)

	return names
}
