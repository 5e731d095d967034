package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/pihagi-server/internal/game"
	"github.com/ugaemi/pihagi-server/internal/session"
	"github.com/ugaemi/pihagi-server/internal/store"
	"github.com/ugaemi/pihagi-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	sm     *session.Manager
	store  store.AccountStore
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(sm *session.Manager, accountStore store.AccountStore, router *Router) *GameplayHandler {
	return &GameplayHandler{
		sm:     sm,
		store:  accountStore,
		router: router,
	}
}

// HandleStart starts a Ready session.
func (h *GameplayHandler) HandleStart(client *ws.Client, _ ws.Message) {
	rt := h.sm.Get(client.ID)
	if rt == nil {
		client.SendMessage(ws.NewErrorMessage("no session"))
		return
	}

	if rt.Session.Phase() == game.PhaseGameOver {
		client.SendMessage(ws.NewErrorMessage("reset required"))
		return
	}

	rt.Session.Start()
	h.recordGamePlayed(client)
}

// HandleReset restarts the session with a fresh game.
func (h *GameplayHandler) HandleReset(client *ws.Client, _ ws.Message) {
	rt := h.sm.Get(client.ID)
	if rt == nil {
		client.SendMessage(ws.NewErrorMessage("no session"))
		return
	}

	rt.Session.Reset()
	h.recordGamePlayed(client)
}

type pointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandlePointer records a pointer-down or pointer-move location as the
// hero's seek target.
func (h *GameplayHandler) HandlePointer(client *ws.Client, msg ws.Message) {
	var req pointerRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid pointer data"))
		return
	}

	rt := h.sm.Get(client.ID)
	if rt == nil {
		client.SendMessage(ws.NewErrorMessage("no session"))
		return
	}

	// Validate coordinates against the current play-field bounds
	st := rt.Session.Committed()
	if req.X < 0 || req.X > st.StageWidth || req.Y < 0 || req.Y > st.StageHeight {
		client.SendMessage(ws.NewErrorMessage("pointer out of bounds"))
		return
	}

	rt.Session.SetHeroTarget(req.X, req.Y)
	slog.Debug("pointer moved", "client", client.ID, "x", req.X, "y", req.Y)
}

type stageRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HandleStage applies play-field dimensions reported at session start or
// on resize.
func (h *GameplayHandler) HandleStage(client *ws.Client, msg ws.Message) {
	var req stageRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Width <= 0 || req.Height <= 0 {
		client.SendMessage(ws.NewErrorMessage("invalid stage dimensions"))
		return
	}

	rt := h.sm.Get(client.ID)
	if rt == nil {
		client.SendMessage(ws.NewErrorMessage("no session"))
		return
	}

	rt.Session.SetStageSize(req.Width, req.Height)
	slog.Debug("stage resized", "client", client.ID, "width", req.Width, "height", req.Height)
}

// recordGamePlayed bumps the account's play counter; persistence
// failures are logged, never surfaced to gameplay.
func (h *GameplayHandler) recordGamePlayed(client *ws.Client) {
	accountID := h.router.GetAccountID(client.ID)
	if accountID == "" {
		return
	}
	if err := h.store.IncrementGamesPlayed(context.Background(), accountID); err != nil {
		slog.Warn("failed to record game played", "account", accountID, "error", err)
	}
}
