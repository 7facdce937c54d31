package pipeline

import "sync"

const rejectionMemoryCap = 1024

// rejectionMemory remembers content hashes of recently flagged submissions
// so the same unedited text cannot be resubmitted. Bounded FIFO; evicting
// an old entry only re-opens the door to a full re-evaluation, so losing
// entries under pressure is safe.
type rejectionMemory struct {
	mu     sync.Mutex
	hashes map[string]struct{}
	order  []string
	cap    int
}

func newRejectionMemory(cap int) *rejectionMemory {
	return &rejectionMemory{
		hashes: make(map[string]struct{}, cap),
		order:  make([]string, 0, cap),
		cap:    cap,
	}
}

func (m *rejectionMemory) Add(hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hashes[hash]; ok {
		return
	}

	if len(m.order) >= m.cap {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.hashes, oldest)
	}

	m.hashes[hash] = struct{}{}
	m.order = append(m.order, hash)
}

func (m *rejectionMemory) Has(hash string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.hashes[hash]
	return ok
}
