package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/pihagi-server/internal/account"
	"github.com/ugaemi/pihagi-server/internal/game"
	"github.com/ugaemi/pihagi-server/internal/session"
	"github.com/ugaemi/pihagi-server/internal/store"
	"github.com/ugaemi/pihagi-server/internal/ws"
)

// JoinHandler handles session establishment.
type JoinHandler struct {
	sm     *session.Manager
	store  store.AccountStore
	router *Router
}

// NewJoinHandler creates a new join handler.
func NewJoinHandler(sm *session.Manager, accountStore store.AccountStore, router *Router) *JoinHandler {
	return &JoinHandler{
		sm:     sm,
		store:  accountStore,
		router: router,
	}
}

type joinRequest struct {
	Nickname  string `json:"nickname"`
	AccountID string `json:"account_id,omitempty"`
}

type joinResponse struct {
	AccountID string `json:"account_id"`
	Nickname  string `json:"nickname"`
	SessionID string `json:"session_id"`
	Phase     string `json:"phase"`
}

// HandleJoin resumes or creates a guest account and builds the client's
// game runtime.
func (h *JoinHandler) HandleJoin(client *ws.Client, msg ws.Message) {
	var req joinRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}

	if h.router.GetAccountID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already joined"))
		return
	}

	acc, err := h.resolveAccount(context.Background(), req)
	if err != nil {
		slog.Error("account lookup failed", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("account unavailable"))
		return
	}

	rt := h.sm.Create(client.ID, soundPlayer{client: client}, newCommitObserver(client))
	client.AccountID = acc.ID
	h.router.RegisterAccount(client.ID, acc.ID)

	resp, _ := ws.NewMessage(ws.TypeSession, joinResponse{
		AccountID: acc.ID,
		Nickname:  acc.Nickname,
		SessionID: rt.Session.ID,
		Phase:     rt.Session.Phase().String(),
	})
	client.SendMessage(resp)

	slog.Info("player joined", "nickname", acc.Nickname, "account", acc.ID, "session", rt.Session.ID)
}

// resolveAccount resumes an existing account when the client presents a
// known ID, otherwise creates a fresh guest account.
func (h *JoinHandler) resolveAccount(ctx context.Context, req joinRequest) (*account.Account, error) {
	if req.AccountID != "" {
		acc, err := h.store.FindByID(ctx, req.AccountID)
		if err != nil {
			return nil, err
		}
		if acc != nil {
			if err := h.store.TouchLastSeen(ctx, acc.ID); err != nil {
				return nil, err
			}
			if req.Nickname != acc.Nickname {
				if err := h.store.UpdateNickname(ctx, acc.ID, req.Nickname); err != nil {
					return nil, err
				}
				acc.Nickname = req.Nickname
			}
			return acc, nil
		}
		// Unknown ID: fall through and start over as a new guest
	}

	acc := account.NewGuestAccount(req.Nickname)
	if err := h.store.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

type soundMessage struct {
	Item game.ItemType `json:"item"`
}

// soundPlayer delivers pickup sound cues to the client best-effort; the
// session logs any failure and game state is never affected.
type soundPlayer struct {
	client *ws.Client
}

func (p soundPlayer) Play(t game.ItemType) error {
	msg, err := ws.NewMessage(ws.TypeSound, soundMessage{Item: t})
	if err != nil {
		return err
	}
	p.client.SendMessage(msg)
	return nil
}

type gameOverMessage struct {
	TimeSurvived float64 `json:"time_survived"`
}

// newCommitObserver streams every committed snapshot to the client and
// emits a one-shot game_over message on the frame the flag commits.
func newCommitObserver(client *ws.Client) func(game.GameState) {
	wasOver := false
	return func(st game.GameState) {
		msg, err := ws.NewMessage(ws.TypeState, st)
		if err != nil {
			slog.Error("failed to encode state snapshot", "client", client.ID, "error", err)
			return
		}
		client.SendMessage(msg)

		if st.GameOver && !wasOver {
			over, _ := ws.NewMessage(ws.TypeGameOver, gameOverMessage{
				TimeSurvived: st.TimeSurvived.Seconds(),
			})
			client.SendMessage(over)
		}
		wasOver = st.GameOver
	}
}
