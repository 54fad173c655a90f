// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shivakumar4147/surveyly/models"
	"github.com/shivakumar4147/surveyly/survey"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Viewer message types
const (
	MessageShow     = "show"
	MessageFeedback = "feedback"
)

// RealtimeHandler pushes survey updates to browsers over a websocket.
type RealtimeHandler struct {
	session  *survey.Session
	syncer   *survey.Synchronizer
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(session *survey.Session, syncer *survey.Synchronizer) *RealtimeHandler {
	return &RealtimeHandler{
		session: session,
		syncer:  syncer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Connect handles GET /api/realtime
func (h *RealtimeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	viewer := h.syncer.Attach()
	replies := make(chan survey.Update, 4)
	ctx, cancel := context.WithCancel(context.Background())

	slog.Debug("viewer connected", "remote", conn.RemoteAddr().String(), "viewers", h.syncer.Viewers())

	go h.writeLoop(conn, viewer, replies, cancel)
	h.readLoop(ctx, conn, viewer, replies)

	cancel()
	h.syncer.Detach(viewer)
	slog.Debug("viewer disconnected", "viewers", h.syncer.Viewers())
}

// readLoop applies viewer messages until the connection fails.
func (h *RealtimeHandler) readLoop(ctx context.Context, conn *websocket.Conn, v *survey.Viewer, replies chan<- survey.Update) {
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg models.ViewerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}

		var reply *survey.Update
		switch msg.Type {
		case MessageShow:
			v.Show(msg.Question)
			reply = h.currentResults(ctx, msg.Question)
		case MessageFeedback:
			v.OpenFeedback(msg.Question)
			if msg.Question != "" {
				reply = &survey.Update{
					Kind:     survey.UpdateFeedback,
					Question: msg.Question,
					Feedback: h.session.QuestionFeedback(ctx, msg.Question),
				}
			}
		default:
			slog.Debug("ignoring viewer message", "type", msg.Type)
		}

		if reply != nil {
			select {
			case replies <- *reply:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *RealtimeHandler) currentResults(ctx context.Context, code string) *survey.Update {
	if code == "" {
		return nil
	}
	view, err := h.session.Results(ctx, code)
	if err != nil {
		slog.Debug("viewer asked for unknown question", "code", code)
		return nil
	}
	return &survey.Update{Kind: survey.UpdateResults, Question: code, Results: &view}
}

// writeLoop is the only writer on conn.
func (h *RealtimeHandler) writeLoop(conn *websocket.Conn, v *survey.Viewer, replies <-chan survey.Update, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		conn.Close()
	}()

	write := func(u survey.Update) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(u); err != nil {
			slog.Debug("websocket write failed", "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case u, ok := <-v.Updates():
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if !write(u) {
				return
			}
		case u := <-replies:
			if !write(u) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
