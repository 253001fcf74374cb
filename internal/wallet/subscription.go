// Package wallet exposes the on-chain subscription collaborator behind an
// opaque capability. The dashboard only relays results and failures; it has
// no opinion about what a subscription means.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable signals that the subscription backend cannot be reached.
var ErrUnavailable = errors.New("subscription service unavailable")

// Subscription is the contract-call surface. Each method may fail
// independently of the others.
type Subscription interface {
	// IsActive reports whether the address holds an active subscription.
	IsActive(ctx context.Context, address string) (bool, error)

	// Fee returns the current subscription fee as a display string in the
	// chain's native denomination.
	Fee(ctx context.Context) (string, error)

	// Subscribe purchases a subscription for the address.
	Subscribe(ctx context.Context, address string) error
}

// Simulated is an in-memory Subscription used while no contract is
// deployed. It remembers who subscribed for the lifetime of the process.
type Simulated struct {
	mu     sync.RWMutex
	active map[string]bool
	fee    string
}

func NewSimulated(fee string) *Simulated {
	return &Simulated{active: make(map[string]bool), fee: fee}
}

func (s *Simulated) IsActive(ctx context.Context, address string) (bool, error) {
	if address == "" {
		return false, fmt.Errorf("address is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[address], nil
}

func (s *Simulated) Fee(ctx context.Context) (string, error) {
	return s.fee, nil
}

func (s *Simulated) Subscribe(ctx context.Context, address string) error {
	if address == "" {
		return fmt.Errorf("address is required")
	}
	s.mu.Lock()
	s.active[address] = true
	s.mu.Unlock()
	return nil
}
