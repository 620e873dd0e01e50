package ledger

import "sync"

// entryLocks serializes work on a single participant's entry while letting
// different participants proceed in parallel. Locks are dropped once no
// goroutine holds or waits for them.
type entryLocks struct {
	mu    sync.Mutex
	locks map[string]*entryLock
}

type entryLock struct {
	mu   sync.Mutex
	refs int
}

func newEntryLocks() *entryLocks {
	return &entryLocks{locks: make(map[string]*entryLock)}
}

// lock blocks until the participant's entry is held and returns the func
// releasing it.
func (l *entryLocks) lock(participant string) func() {
	l.mu.Lock()
	el, ok := l.locks[participant]
	if !ok {
		el = &entryLock{}
		l.locks[participant] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()

	return func() {
		el.mu.Unlock()

		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, participant)
		}
		l.mu.Unlock()
	}
}

func (l *entryLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
