package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	saved   []string
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) LoadHistory() ([]string, error) {
	return m.saved, m.loadErr
}

func (m *memStore) SaveHistory(entries []string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = entries
	m.saves++
	return nil
}

func TestAddPrependsNewestFirst(t *testing.T) {
	l := New(nil)
	l.Add("1 + 1 = 2")
	l.Add("2 * 3 = 6")

	assert.Equal(t, []string{"2 * 3 = 6", "1 + 1 = 2"}, l.Entries())
}

func TestAddEvictsOldestPastLimit(t *testing.T) {
	l := New(nil)
	for i := 0; i < MaxEntries+1; i++ {
		l.Add(fmt.Sprintf("entry %d", i))
	}

	entries := l.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "entry 100", entries[0])
	assert.Equal(t, "entry 1", entries[MaxEntries-1])
	assert.NotContains(t, entries, "entry 0")
}

func TestNewTruncatesSeed(t *testing.T) {
	seed := make([]string, MaxEntries+20)
	for i := range seed {
		seed[i] = fmt.Sprintf("e%d", i)
	}
	l := New(seed)
	assert.Equal(t, MaxEntries, l.Len())
	assert.Equal(t, "e0", l.Entries()[0])
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := New([]string{"a"})
	got := l.Entries()
	got[0] = "mutated"
	assert.Equal(t, "a", l.Entries()[0])
}

func TestClear(t *testing.T) {
	l := New([]string{"a", "b"})
	l.Clear()
	assert.Zero(t, l.Len())
	assert.True(t, l.Dirty())
}

func TestSyncSavesOnlyWhenDirty(t *testing.T) {
	s := &memStore{}
	l := New(nil)

	require.NoError(t, l.Sync(s))
	assert.Zero(t, s.saves)

	l.Add("5 + 3 = 8")
	require.NoError(t, l.Sync(s))
	assert.Equal(t, 1, s.saves)
	assert.Equal(t, []string{"5 + 3 = 8"}, s.saved)
	assert.False(t, l.Dirty())

	require.NoError(t, l.Sync(s))
	assert.Equal(t, 1, s.saves)
}

func TestSyncKeepsDirtyOnError(t *testing.T) {
	s := &memStore{saveErr: errors.New("disk full")}
	l := New(nil)
	l.Add("x")

	require.Error(t, l.Sync(s))
	assert.True(t, l.Dirty())
}

func TestLoad(t *testing.T) {
	l, err := Load(&memStore{saved: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, l.Entries())

	l, err = Load(&memStore{loadErr: errors.New("boom")})
	require.Error(t, err)
	assert.Zero(t, l.Len())
}
