package session

import (
	"log/slog"
	"sync"

	"github.com/ugaemi/pihagi-server/internal/game"
)

// Runtime bundles one client's game session with the frame clock that
// drives it and the mover that feeds position reports back into it.
type Runtime struct {
	Session *game.Session
	Clock   *game.TickerClock
	Mover   *game.Mover
}

// Manager owns one runtime per connected client.
type Manager struct {
	runtimes map[string]*Runtime // client ID -> runtime
	mu       sync.RWMutex

	loseOnCollision bool
}

// NewManager creates a session manager.
func NewManager(loseOnCollision bool) *Manager {
	return &Manager{
		runtimes:        make(map[string]*Runtime),
		loseOnCollision: loseOnCollision,
	}
}

// Create builds a runtime for a client: a dedicated frame clock, a
// session wired to the client's sound player and committed-state
// observer, and a mover attached ahead of the session so its reports
// land in the same frame's batch.
func (m *Manager) Create(clientID string, sound game.SoundPlayer, onCommit func(game.GameState)) *Runtime {
	clock := game.NewTickerClock(game.FrameInterval)
	s := game.NewSession(clock, sound, m.loseOnCollision)
	s.SetOnCommit(onCommit)

	mover := game.NewMover(s)
	mover.Attach(clock)

	rt := &Runtime{Session: s, Clock: clock, Mover: mover}

	m.mu.Lock()
	m.runtimes[clientID] = rt
	m.mu.Unlock()

	slog.Info("session created", "client", clientID, "session", s.ID)
	return rt
}

// Get returns the runtime for a client, or nil.
func (m *Manager) Get(clientID string) *Runtime {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runtimes[clientID]
}

// Remove tears down a client's runtime: session closed, mover detached,
// clock stopped.
func (m *Manager) Remove(clientID string) {
	m.mu.Lock()
	rt := m.runtimes[clientID]
	delete(m.runtimes, clientID)
	m.mu.Unlock()

	if rt == nil {
		return
	}

	rt.Session.Close()
	rt.Mover.Detach(rt.Clock)
	rt.Clock.Stop()

	slog.Info("session removed", "client", clientID, "session", rt.Session.ID)
}

// Count returns the number of active runtimes.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runtimes)
}
