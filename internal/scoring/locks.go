package scoring

import "sync"

// matchLocks serializes ball commits per match so that concurrent requests
// for the same match cannot interleave replay and append.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for a match id and returns its unlock func.
func (l *matchLocks) lock(matchID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[matchID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[matchID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
