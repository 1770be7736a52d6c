package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pmis/billing"
	"pmis/logger"
	"pmis/models"
	"pmis/repository"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 64 << 10
)

// Edit is one field change sent by the client.
type Edit struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type Message struct {
	Type  string            `json:"type"` // summary | error
	Data  *models.DraftView `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Hub runs live editing sessions. Each draft has at most one session, and
// the session owns the draft's editor until it closes.
type Hub struct {
	drafts   repository.DraftStore
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	draftID string
	ws      *websocket.Conn
	editor  *billing.Editor
	send    chan Message
	done    chan struct{}
	hub     *Hub
}

// NewHub accepts connections from allowedOrigins, or from anywhere when the
// list is empty.
func NewHub(drafts repository.DraftStore, allowedOrigins []string) *Hub {
	h := &Hub{
		drafts:   drafts,
		log:      logger.WithComponent("live"),
		sessions: make(map[string]*session),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			return slices.Contains(allowedOrigins, r.Header.Get("Origin"))
		},
	}
	return h
}

// Run closes every session once ctx is done.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.sessions))
	for _, s := range h.sessions {
		conns = append(conns, s.ws)
	}
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

// Active reports whether a draft has an open session.
func (h *Hub) Active(draftID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[draftID]
	return ok
}

func (h *Hub) claim(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, taken := h.sessions[s.draftID]; taken {
		return false
	}
	h.sessions[s.draftID] = s
	return true
}

func (h *Hub) release(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[s.draftID] == s {
		delete(h.sessions, s.draftID)
	}
}

// HandleDraft upgrades the request into an editing session for draftID.
func (h *Hub) HandleDraft(w http.ResponseWriter, r *http.Request, draftID string) {
	d, err := h.drafts.Get(r.Context(), draftID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("draft_id", draftID).Msg("load draft")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s := &session{
		draftID: draftID,
		editor:  billing.ResumeEditor(d.Input),
		send:    make(chan Message, 16),
		done:    make(chan struct{}),
		hub:     h,
	}
	if !h.claim(s) {
		http.Error(w, "draft is open in another session", http.StatusConflict)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.release(s)
		h.log.Warn().Err(err).Str("draft_id", draftID).Msg("websocket upgrade")
		return
	}
	s.ws = ws

	s.send <- s.summary()
	go s.writePump()
	s.readPump()
}

func (s *session) summary() Message {
	v := models.NewDraftView(s.draftID, s.editor)
	return Message{Type: "summary", Data: &v}
}

func (s *session) fail(err error) Message {
	m := s.summary()
	m.Type = "error"
	m.Error = err.Error()
	return m
}

func (s *session) readPump() {
	defer func() {
		s.hub.release(s)
		close(s.send)
		s.ws.Close()
	}()

	s.ws.SetReadLimit(maxMessage)
	_ = s.ws.SetReadDeadline(time.Now().Add(pongWait))
	s.ws.SetPongHandler(func(string) error {
		return s.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.hub.log.Warn().Err(err).Str("draft_id", s.draftID).Msg("websocket read")
			}
			return
		}
		select {
		case s.send <- s.apply(raw):
		case <-s.done:
			return
		default:
			s.hub.log.Warn().Str("draft_id", s.draftID).Msg("client not reading, dropping session")
			return
		}
	}
}

func (s *session) apply(raw []byte) Message {
	var e Edit
	if err := json.Unmarshal(raw, &e); err != nil {
		return s.fail(errors.New("invalid message"))
	}
	if err := s.editor.Set(billing.Field(e.Field), e.Value); err != nil {
		return s.fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	d := &models.Draft{ID: s.draftID, Input: s.editor.Input()}
	if err := s.hub.drafts.Save(ctx, d); err != nil {
		s.hub.log.Error().Err(err).Str("draft_id", s.draftID).Msg("save draft")
		return s.fail(errors.New("draft could not be saved"))
	}
	return s.summary()
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(s.done)
		s.ws.Close()
	}()

	for {
		select {
		case m, ok := <-s.send:
			_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.ws.WriteJSON(m); err != nil {
				s.hub.log.Warn().Err(err).Str("draft_id", s.draftID).Msg("websocket write")
				return
			}
		case <-ticker.C:
			_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
