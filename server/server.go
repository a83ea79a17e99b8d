// Package server exposes optimization sessions over websockets
//
// A client opens /optimize and sends one scenario document as JSON text.
// The server answers with progress messages as JSON text, then the result
// message followed by the replay as one binary msgpack message. Closing the
// connection, or sending "cancel", stops the session.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/trickybestia/cocsim/config"
	"github.com/trickybestia/cocsim/optimize"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/status"
)

const writeWait = 10 * time.Second

// errorMessage reports a rejected document or a failed session
type errorMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Server tracks running sessions
type Server struct {
	reg      *status.Registry
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uuid.UUID]context.CancelFunc
}

// New creates a server whose sessions report to reg
func New(reg *status.Registry) *Server {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Server{
		reg: reg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[uuid.UUID]context.CancelFunc),
	}
}

// Handler routes /optimize, /sessions and /status
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/optimize", s.handleOptimize)
	mux.HandleFunc("GET /sessions", s.handleList)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleCancel)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	return mux
}

// Sessions returns the IDs of running sessions in a stable order
func (s *Server) Sessions() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

// Cancel stops a running session; it reports whether the session existed
func (s *Server) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	cancel, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Shutdown cancels every running session
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.sessions {
		cancel()
	}
}

func (s *Server) register(id uuid.UUID, cancel context.CancelFunc) {
	s.mu.Lock()
	s.sessions[id] = cancel
	s.mu.Unlock()
}

func (s *Server) unregister(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sessions())
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return
	}
	if !s.Cancel(id) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.reg.Snapshot())
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(parameter.ServerReadLimit)

	_, payload, err := conn.ReadMessage()
	if err != nil {
		return
	}
	doc, err := config.Parse(payload, true)
	if err != nil {
		s.fail(conn, err)
		return
	}
	o := doc.Optimizer
	pr, err := optimize.NewProblem(&doc.Map, &doc.Army, o.Runs, o.Workers, o.Seed, s.reg)
	if err != nil {
		s.fail(conn, err)
		return
	}
	opt, err := optimize.New(pr, o, doc.Plan)
	if err != nil {
		s.fail(conn, err)
		return
	}
	sess := optimize.NewSession(pr, opt, o.Steps, parameter.ReplayEvery)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	s.register(sess.ID, cancel)
	defer s.unregister(sess.ID)

	// reader: any read error means the client is gone
	go func() {
		defer cancel()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if string(msg) == "cancel" {
				return
			}
		}
	}()

	_, err = sess.Run(ctx, func(m optimize.Message) error {
		if err := writeMessage(conn, websocket.TextMessage, m); err != nil {
			return err
		}
		if m.Replay == nil {
			return nil
		}
		data, err := m.Replay.Marshal()
		if err != nil {
			return err
		}
		return writeMessage(conn, websocket.BinaryMessage, data)
	})
	if err != nil && ctx.Err() == nil {
		s.fail(conn, err)
		return
	}
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
}

// writeMessage sends v; byte slices go out as they are, anything else as JSON
func writeMessage(conn *websocket.Conn, kind int, v any) error {
	data, ok := v.([]byte)
	if !ok {
		var err error
		if data, err = json.Marshal(v); err != nil {
			return err
		}
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(kind, data)
}

func (s *Server) fail(conn *websocket.Conn, err error) {
	log.Printf("server: %v", err)
	_ = writeMessage(conn, websocket.TextMessage, errorMessage{Kind: "error", Text: err.Error()})
	closeMsg := websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "")
	_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
}
