package session

import (
	"sort"
	"sync"
	"time"

	perr "easywealth/internal/platform/errors"
)

// Store keeps workspaces for the life of the process
type Store struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{workspaces: make(map[string]*Workspace), now: time.Now}
}

// Create opens a fresh workspace
func (s *Store) Create() *Workspace {
	ws := newWorkspace(s.now)
	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()
	return ws
}

func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, perr.WithField(perr.NotFoundf("session %q not found", id), "session_id")
	}
	return ws, nil
}

// List returns workspaces oldest first
func (s *Store) List() []*Workspace {
	s.mu.RLock()
	out := make([]*Workspace, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		out = append(out, ws)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
