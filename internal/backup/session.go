package backup

import "sync"

// Session snapshots each directory at most once, so repeated forced runs in
// watch mode keep the backup of the tree as it was before the first run.
type Session struct {
	mgr *Manager

	mu    sync.Mutex
	taken map[string]*Manifest
}

// NewSession wraps mgr.
func NewSession(mgr *Manager) *Session {
	return &Session{mgr: mgr, taken: make(map[string]*Manifest)}
}

// Ensure snapshots dir unless this session already has. A failed snapshot
// is not remembered, so the next call retries. The bool reports whether a
// snapshot was taken by this call.
func (s *Session) Ensure(dir string) (*Manifest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.taken[dir]; ok {
		return m, false, nil
	}
	m, err := s.mgr.Snapshot(dir)
	if err != nil {
		return nil, false, err
	}
	s.taken[dir] = m
	return m, m != nil, nil
}

// Reset forgets every snapshot taken so far.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taken = make(map[string]*Manifest)
}
