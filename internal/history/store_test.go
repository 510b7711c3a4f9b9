package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Hidro/internal/calc"
	"Hidro/internal/catalog"
	"Hidro/internal/repo"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func draft(i int) Draft {
	return Draft{
		Category:     catalog.Pressure,
		CategoryName: "Pressão",
		Value:        float64(i),
		Display:      fmt.Sprint(i),
		Unit:         "Pa",
		Formula:      "P = F / A",
		Derivation:   []string{fmt.Sprintf("P = %d Pa", i)},
	}
}

func newTestStore(t *testing.T) (*Store, *repo.MemoryStore) {
	t.Helper()
	blobs := repo.NewMemoryStore()
	s := NewStore(blobs, WithClock(fixedClock()))
	s.Load(context.Background())
	return s, blobs
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Entries())
	assert.NotNil(t, s.Entries())
}

func TestLoadTolerance(t *testing.T) {
	for name, blob := range map[string]string{
		"empty":      "",
		"whitespace": "   ",
		"corrupt":    "{not json",
		"wrong type": `{"id": 1}`,
		"null":       "null",
	} {
		t.Run(name, func(t *testing.T) {
			blobs := repo.NewMemoryStore()
			require.NoError(t, blobs.WriteBlob(context.Background(), Key, blob))
			s := NewStore(blobs)
			s.Load(context.Background())
			assert.Empty(t, s.Entries())
		})
	}
}

type failingStore struct{}

func (failingStore) ReadBlob(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}
func (failingStore) WriteBlob(context.Context, string, string) error {
	return errors.New("disk on fire")
}
func (failingStore) DeleteBlob(context.Context, string) error { return nil }

func TestBackendFailuresAreSwallowed(t *testing.T) {
	s := NewStore(failingStore{})
	ctx := context.Background()
	s.Load(ctx)
	assert.Empty(t, s.Entries())

	e := s.Add(ctx, draft(1))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Remove(ctx, e.ID))
	s.Clear(ctx)
	assert.Empty(t, s.Entries())
}

func TestAddPrependsWithFreshIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := s.Add(ctx, draft(1))
	b := s.Add(ctx, draft(2))

	assert.Greater(t, b.ID, a.ID)
	assert.Equal(t, "14/03/2026 09:30:00", a.CreatedAt)

	got := s.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestIDsStayIncreasingWhenClockGoesBack(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC),
	}
	i := 0
	s := NewStore(repo.NewMemoryStore(), WithClock(func() time.Time {
		ts := times[i%len(times)]
		i++
		return ts
	}))
	ctx := context.Background()
	a := s.Add(ctx, draft(1))
	b := s.Add(ctx, draft(2))
	assert.Greater(t, b.ID, a.ID)
}

func TestBoundedToMaxEntries(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	var added []Entry
	for i := 1; i <= MaxEntries+1; i++ {
		added = append(added, s.Add(ctx, draft(i)))
	}

	got := s.Entries()
	require.Len(t, got, MaxEntries)
	assert.Equal(t, added[MaxEntries].ID, got[0].ID, "newest first")
	assert.Equal(t, added[1].ID, got[MaxEntries-1].ID, "second oldest is now last")
	for _, e := range got {
		assert.NotEqual(t, added[0].ID, e.ID, "oldest evicted")
	}
}

func TestRemove(t *testing.T) {
	s, blobs := newTestStore(t)
	ctx := context.Background()
	a := s.Add(ctx, draft(1))
	b := s.Add(ctx, draft(2))

	before, err := blobs.ReadBlob(ctx, Key)
	require.NoError(t, err)
	assert.False(t, s.Remove(ctx, 42))
	after, err := blobs.ReadBlob(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, s.Entries(), 2)

	assert.True(t, s.Remove(ctx, a.ID))
	got := s.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestClear(t *testing.T) {
	s, blobs := newTestStore(t)
	ctx := context.Background()
	s.Clear(ctx)
	assert.Empty(t, s.Entries())

	s.Add(ctx, draft(1))
	s.Add(ctx, draft(2))
	s.Clear(ctx)
	assert.Empty(t, s.Entries())

	raw, err := blobs.ReadBlob(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestPersistedLogSurvivesReload(t *testing.T) {
	s, blobs := newTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		s.Add(ctx, draft(i))
	}
	want := s.Entries()

	raw, err := blobs.ReadBlob(ctx, Key)
	require.NoError(t, err)
	var decoded []Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, want, decoded)

	reloaded := NewStore(blobs)
	reloaded.Load(ctx)
	assert.Equal(t, want, reloaded.Entries())

	next := reloaded.Add(ctx, draft(4))
	assert.Greater(t, next.ID, want[0].ID)
}

func TestLoadTruncatesOversizedLog(t *testing.T) {
	entries := make([]Entry, MaxEntries+5)
	for i := range entries {
		entries[i] = Entry{ID: int64(len(entries) - i), Category: catalog.Pressure}
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)

	blobs := repo.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, blobs.WriteBlob(ctx, Key, string(data)))
	s := NewStore(blobs)
	s.Load(ctx)
	assert.Len(t, s.Entries(), MaxEntries)
	assert.Equal(t, entries[0].ID, s.Entries()[0].ID)
}

func TestRecordRefusesInvalidResults(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	req := calc.Request{Category: catalog.Pressure, Values: map[string]calc.Raw{"area": "2"}}
	res, err := calc.Evaluate(req)
	require.NoError(t, err)
	_, err = s.Record(ctx, req, res)
	assert.ErrorIs(t, err, ErrInvalidResult)

	req = calc.Request{Category: catalog.FrictionFactor, Values: map[string]calc.Raw{"reynolds": "1e8", "relativeRoughness": "-1"}}
	res, err = calc.Evaluate(req)
	require.NoError(t, err)
	_, err = s.Record(ctx, req, res)
	assert.ErrorIs(t, err, ErrInvalidResult)

	assert.Empty(t, s.Entries())
}

func TestRecordValidResult(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	req := calc.Request{
		Category: catalog.Reynolds,
		Values:   map[string]calc.Raw{"density": "1000", "velocity": "2", "diameter": "100", "viscosity": "1"},
		Units:    map[string]string{"diameter": "mm", "viscosity": "cP"},
	}
	res, err := calc.Evaluate(req)
	require.NoError(t, err)
	e, err := s.Record(ctx, req, res)
	require.NoError(t, err)

	assert.Equal(t, catalog.Reynolds, e.Category)
	assert.Equal(t, "Número de Reynolds", e.CategoryName)
	assert.Equal(t, "200000", e.Display)
	assert.Equal(t, "Turbulento", e.Regime)
	assert.Equal(t, "Re = ρ · v · D / μ", e.Formula)
	assert.Equal(t, "100 mm", e.Inputs["diameter"])
	assert.Equal(t, "1000 kg/m³", e.Inputs["density"])
	assert.NotEmpty(t, e.Derivation)

	got, ok := s.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, e, got)
}

func TestMutationsPublish(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	calls := 0
	unsubscribe := s.Broadcaster().Subscribe(func() { calls++ })

	e := s.Add(ctx, draft(1))
	assert.Equal(t, 1, calls)
	s.Remove(ctx, 999)
	assert.Equal(t, 1, calls, "no-op remove does not signal")
	s.Remove(ctx, e.ID)
	s.Clear(ctx)
	assert.Equal(t, 3, calls)

	unsubscribe()
	unsubscribe()
	s.Add(ctx, draft(2))
	assert.Equal(t, 3, calls)
}

func TestObserverReloadsOnSignal(t *testing.T) {
	blobs := repo.NewMemoryStore()
	bus := NewBroadcaster()
	ctx := context.Background()

	writer := NewStore(blobs, WithBroadcaster(bus))
	writer.Load(ctx)
	panel := NewStore(blobs)
	panel.Load(ctx)
	bus.Subscribe(func() { panel.Reload(ctx) })
	bus.Subscribe(func() { panel.Reload(ctx) })

	e := writer.Add(ctx, draft(7))
	got := panel.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)

	bus.Publish()
	bus.Publish()
	assert.Equal(t, writer.Entries(), panel.Entries())
}
