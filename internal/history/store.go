package history

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"Hidro/internal/calc"
	"Hidro/internal/logger"
	"Hidro/internal/metrics"
	"Hidro/internal/repo"
)

const (
	// MaxEntries bounds the log; adding past it evicts the oldest entry.
	MaxEntries = 25
	// Key is the blob key the log is persisted under.
	Key = "fluid-calc-history"
)

// Store owns the newest-first history log and writes it through to a
// BlobStore on every mutation. Persistence failures are logged and
// swallowed: the in-memory log stays authoritative.
type Store struct {
	mu      sync.Mutex
	blobs   repo.BlobStore
	bus     *Broadcaster
	log     *logger.Logger
	now     func() time.Time
	lastID  int64
	entries []Entry
}

type Option func(*Store)

func WithBroadcaster(b *Broadcaster) Option {
	return func(s *Store) { s.bus = b }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds an empty store; call Load to rehydrate it.
func NewStore(blobs repo.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs:   blobs,
		now:     time.Now,
		entries: []Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = NewBroadcaster()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Broadcaster returns the change channel of this store.
func (s *Store) Broadcaster() *Broadcaster {
	return s.bus
}

// Load replaces the in-memory log with the persisted one. A missing, empty,
// unreadable or corrupt blob yields an empty log. Load may be called any
// number of times.
func (s *Store) Load(ctx context.Context) {
	entries := s.read(ctx)

	s.mu.Lock()
	s.entries = entries
	for _, e := range entries {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
	n := len(s.entries)
	s.mu.Unlock()
	metrics.ObserveHistory(metrics.HistoryLoad, n)
}

// Reload is Load under the name subscribers use after a change signal.
func (s *Store) Reload(ctx context.Context) {
	s.Load(ctx)
}

func (s *Store) read(ctx context.Context) []Entry {
	raw, err := s.blobs.ReadBlob(ctx, Key)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.log.Warn("history read failed", "error", err)
		}
		return []Entry{}
	}
	if strings.TrimSpace(raw) == "" {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn("history blob corrupt, starting empty", "error", err)
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry{}, s.entries...)
}

// Len is the number of entries in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get looks an entry up by id.
func (s *Store) Get(id int64) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Add prepends a new entry, evicting the oldest past MaxEntries, persists
// the log and signals subscribers.
func (s *Store) Add(ctx context.Context, d Draft) Entry {
	s.mu.Lock()
	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	e := Entry{
		ID:           id,
		Category:     d.Category,
		CategoryName: d.CategoryName,
		Value:        d.Value,
		Display:      d.Display,
		Unit:         d.Unit,
		Regime:       d.Regime,
		Formula:      d.Formula,
		Derivation:   d.Derivation,
		Inputs:       d.Inputs,
		CreatedAt:    now.Format(TimeLayout),
	}
	next := make([]Entry, 0, MaxEntries)
	next = append(next, e)
	next = append(next, s.entries...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	s.entries = next
	s.persistLocked(ctx)
	n := len(s.entries)
	s.mu.Unlock()

	metrics.ObserveHistory(metrics.HistoryAdd, n)
	s.bus.Publish()
	return e
}

// Record is the append entrypoint for evaluations. Incomplete or non-finite
// results are refused with ErrInvalidResult and nothing is stored.
func (s *Store) Record(ctx context.Context, req calc.Request, res calc.Result) (Entry, error) {
	d, err := DraftFrom(req, res)
	if err != nil {
		return Entry{}, err
	}
	return s.Add(ctx, d), nil
}

// Remove drops the entry with id. It reports false, and changes nothing,
// when no such entry exists.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)
	s.entries = next
	s.persistLocked(ctx)
	n := len(s.entries)
	s.mu.Unlock()

	metrics.ObserveHistory(metrics.HistoryRemove, n)
	s.bus.Publish()
	return true
}

// Clear empties the log unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = []Entry{}
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.ObserveHistory(metrics.HistoryClear, 0)
	s.bus.Publish()
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.log.Error("history encode failed", "error", err)
		return
	}
	if err := s.blobs.WriteBlob(ctx, Key, string(data)); err != nil {
		s.log.Warn("history write failed", "error", err, "entries", len(s.entries))
	}
}
