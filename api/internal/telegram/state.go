package telegram

import (
	"sync"
	"time"
)

const (
	debounce   = 1200 * time.Millisecond
	pendingTTL = 30 * time.Minute
)

// photoBatch collects the items of one album until the debounce timer fires.
type photoBatch struct {
	ChatID       int64
	Key          string // "grp:<mediaGroupID>"
	MediaGroupID string

	mu     sync.Mutex
	images [][]byte
	timer  *time.Timer
	done   bool
}

type pendingPhoto struct {
	data []byte
	at   time.Time
}

// PendingStore keeps the first photo of a pair per chat until the second one arrives.
type PendingStore struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[int64]pendingPhoto
}

func NewPendingStore(ttl time.Duration) *PendingStore {
	if ttl <= 0 {
		ttl = pendingTTL
	}
	return &PendingStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[int64]pendingPhoto),
	}
}

// Put remembers data as the chat's first photo, replacing any previous one.
func (s *PendingStore) Put(chatID int64, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[chatID] = pendingPhoto{data: data, at: s.now()}
}

// Take removes and returns the chat's first photo. Expired photos are dropped.
func (s *PendingStore) Take(chatID int64) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[chatID]
	if !ok {
		return nil, false
	}
	delete(s.items, chatID)
	if s.now().Sub(p.at) > s.ttl {
		return nil, false
	}
	return p.data, true
}

func (s *PendingStore) Has(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[chatID]
	return ok && s.now().Sub(p.at) <= s.ttl
}

// Delete drops the chat's first photo and reports whether there was one.
func (s *PendingStore) Delete(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[chatID]
	delete(s.items, chatID)
	return ok
}
