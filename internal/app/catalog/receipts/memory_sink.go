package receipts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
)

var (
	ErrUnknownDestination = errors.New("receipt destination does not exist")
	ErrObjectExists       = errors.New("receipt object already exists")
)

// MemorySink keeps destinations and their objects in process.
type MemorySink struct {
	mu           sync.Mutex
	destinations map[string]map[string][]byte
}

var _ contracts.ReceiptSink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{destinations: make(map[string]map[string][]byte)}
}

func (s *MemorySink) CreateDestination(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.destinations[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrDestinationExists)
	}
	s.destinations[name] = make(map[string][]byte)
	return nil
}

func (s *MemorySink) WriteObject(_ context.Context, destination, name string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objects, ok := s.destinations[destination]
	if !ok {
		return fmt.Errorf("%s: %w", destination, ErrUnknownDestination)
	}
	if _, exists := objects[name]; exists {
		return fmt.Errorf("%s/%s: %w", destination, name, ErrObjectExists)
	}
	objects[name] = append([]byte(nil), body...)
	return nil
}

// Destinations lists the created destinations in name order.
func (s *MemorySink) Destinations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.destinations))
	for name := range s.destinations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Objects returns a copy of the objects written to destination.
func (s *MemorySink) Objects(destination string) map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte, len(s.destinations[destination]))
	for k, v := range s.destinations[destination] {
		out[k] = append([]byte(nil), v...)
	}
	return out
}
