package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/pihagi-server/internal/session"
	"github.com/ugaemi/pihagi-server/internal/store"
	"github.com/ugaemi/pihagi-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	join     *JoinHandler
	gameplay *GameplayHandler

	// accountMap tracks client ID -> account ID, shared across handlers.
	accountMap map[string]string
	mu         sync.RWMutex

	sm *session.Manager
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager, accountStore store.AccountStore) *Router {
	r := &Router{
		accountMap: make(map[string]string),
		sm:         sm,
	}
	r.join = NewJoinHandler(sm, accountStore, r)
	r.gameplay = NewGameplayHandler(sm, accountStore, r)
	return r
}

// RegisterAccount maps a client ID to an account ID.
func (r *Router) RegisterAccount(clientID, accountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accountMap[clientID] = accountID
}

// UnregisterAccount removes a client's account mapping.
func (r *Router) UnregisterAccount(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accountMap, clientID)
}

// GetAccountID returns the account ID for a client, or empty string.
func (r *Router) GetAccountID(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accountMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	// Join is always allowed
	if msg.Type == ws.TypeJoin {
		r.join.HandleJoin(cm.Client, msg)
		return
	}

	// Join guard: everything else needs a session
	if r.GetAccountID(cm.Client.ID) == "" {
		cm.Client.SendMessage(ws.NewErrorMessage("join required"))
		return
	}

	switch msg.Type {
	case ws.TypeStart:
		r.gameplay.HandleStart(cm.Client, msg)
	case ws.TypeReset:
		r.gameplay.HandleReset(cm.Client, msg)
	case ws.TypePointer:
		r.gameplay.HandlePointer(cm.Client, msg)
	case ws.TypeStage:
		r.gameplay.HandleStage(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect tears down the client's session runtime.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sm.Remove(client.ID)
	r.UnregisterAccount(client.ID)
	slog.Info("client left", "client", client.ID)
}
