package calendarRepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"salonbook/models"
)

// MemoryIndex is an in-process calendar index backed by a map with
// per-staff/date locking. It satisfies the same contract as the Mongo
// implementation and backs the test suite.
type MemoryIndex struct {
	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
	ranges   map[string][]memoryReservation // key: staffID|date
	tokens   map[string]string              // token -> key
}

type memoryReservation struct {
	token string
	rng   models.Range
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		keyLocks: make(map[string]*sync.Mutex),
		ranges:   make(map[string][]memoryReservation),
		tokens:   make(map[string]string),
	}
}

func (m *MemoryIndex) lockFor(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.keyLocks[key]
	if !ok {
		l = &sync.Mutex{}
		m.keyLocks[key] = l
	}
	return l
}

func (m *MemoryIndex) Reserve(ctx context.Context, staffID, date string, startMinute, committedMinutes int) (string, error) {
	key := staffID + "|" + date
	l := m.lockFor(key)
	l.Lock()
	defer l.Unlock()

	want := models.Range{StartMinute: startMinute, EndMinute: startMinute + committedMinutes}
	for _, r := range m.ranges[key] {
		if r.rng.Overlaps(want) {
			return "", ErrConflict
		}
	}

	token := uuid.New().String()
	m.ranges[key] = append(m.ranges[key], memoryReservation{token: token, rng: want})

	m.mu.Lock()
	m.tokens[token] = key
	m.mu.Unlock()

	return token, nil
}

func (m *MemoryIndex) Release(ctx context.Context, token string) error {
	m.mu.Lock()
	key, ok := m.tokens[token]
	m.mu.Unlock()
	if !ok {
		return nil // unknown or already released
	}

	l := m.lockFor(key)
	l.Lock()
	defer l.Unlock()

	kept := m.ranges[key][:0]
	for _, r := range m.ranges[key] {
		if r.token != token {
			kept = append(kept, r)
		}
	}
	m.ranges[key] = kept

	m.mu.Lock()
	delete(m.tokens, token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Committed(ctx context.Context, staffID, date string) ([]models.Range, error) {
	key := staffID + "|" + date
	l := m.lockFor(key)
	l.Lock()
	defer l.Unlock()

	out := make([]models.Range, 0, len(m.ranges[key]))
	for _, r := range m.ranges[key] {
		out = append(out, r.rng)
	}
	return out, nil
}
