package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/photo-tools-mcp/internal/history"
	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

// editSession is an open image: its edit history and the file it came from.
type editSession struct {
	path    string
	history *history.Session
}

// sessionStore maps session ids to open images.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*editSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*editSession)}
}

// open starts a session on buf and returns its id.
func (st *sessionStore) open(path string, buf *imaging.Buffer) string {
	id := uuid.NewString()
	st.mu.Lock()
	st.sessions[id] = &editSession{path: path, history: history.NewSession(buf)}
	st.mu.Unlock()
	return id
}

func (st *sessionStore) get(id string) (*editSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session: %q", id)
	}
	return sess, nil
}

// close drops a session. It reports whether the id was open.
func (st *sessionStore) close(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
