package store

import "sync"

// MemoryPersister keeps the state document in memory. Used for tests and
// the ephemeral demo mode where nothing should touch disk.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

var _ Persister = (*MemoryPersister)(nil)

// NewMemoryPersister returns an empty in-memory persister. A non-nil seed
// becomes the initial document.
func NewMemoryPersister(seed []byte) *MemoryPersister {
	return &MemoryPersister{data: seed}
}

func (p *MemoryPersister) Load() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data, nil
}

func (p *MemoryPersister) Save(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = append([]byte(nil), data...)
	return nil
}

func (p *MemoryPersister) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = nil
	return nil
}
