// Package history keeps the calculator's list of completed equations.
package history

// MaxEntries is the number of entries kept. Older entries are dropped.
const MaxEntries = 100

// Store loads and saves the log. store.DB implements it.
type Store interface {
	LoadHistory() ([]string, error)
	SaveHistory(entries []string) error
}

// Log is an ordered list of equation strings, newest first.
type Log struct {
	entries []string
	dirty   bool
}

// New returns a log seeded with entries (newest first), truncated to
// MaxEntries.
func New(entries []string) *Log {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	cp := make([]string, len(entries))
	copy(cp, entries)
	return &Log{entries: cp}
}

// Load reads the log from s.
func Load(s Store) (*Log, error) {
	entries, err := s.LoadHistory()
	if err != nil {
		return New(nil), err
	}
	return New(entries), nil
}

// Add prepends entry, evicting the oldest entry past MaxEntries.
func (l *Log) Add(entry string) {
	l.entries = append(l.entries, "")
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	l.dirty = true
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
	l.dirty = true
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []string {
	cp := make([]string, len(l.entries))
	copy(cp, l.entries)
	return cp
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Dirty reports whether the log changed since the last Sync.
func (l *Log) Dirty() bool {
	return l.dirty
}

// Sync saves the log to s if it changed.
func (l *Log) Sync(s Store) error {
	if !l.dirty {
		return nil
	}
	if err := s.SaveHistory(l.Entries()); err != nil {
		return err
	}
	l.dirty = false
	return nil
}
