// Package web exposes the deck state over HTTP, for dashboards and health
// checks.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
	board      *Board
	router     *mux.Router
}

func New(addr string, board *Board) *Server {
	s := &Server{board: board}

	r := mux.NewRouter()
	r.HandleFunc("/api/states", s.handleStates).Methods(http.MethodGet)
	r.HandleFunc("/api/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router = r

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Infof("Starting status server on %v", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	type buttonState struct {
		Name  string `json:"name"`
		State string `json:"state"`
	}

	snap := s.board.Snapshot()
	resp := struct {
		Buttons []buttonState `json:"buttons"`
	}{
		Buttons: make([]buttonState, 0, len(snap.Buttons)),
	}
	for _, b := range snap.Buttons {
		resp.Buttons = append(resp.Buttons, buttonState{Name: b.Name, State: b.State})
	}

	writeJSON(w, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	type buttonCounts struct {
		Name          string `json:"name"`
		ShortReleases uint64 `json:"shortReleases"`
		LongPresses   uint64 `json:"longPresses"`
	}

	snap := s.board.Snapshot()
	resp := struct {
		Started   time.Time      `json:"started"`
		Uptime    string         `json:"uptime"`
		LastEvent string         `json:"lastEvent,omitempty"`
		LastAt    *time.Time     `json:"lastEventAt,omitempty"`
		Buttons   []buttonCounts `json:"buttons"`
	}{
		Started:   snap.Started,
		Uptime:    time.Since(snap.Started).Round(time.Second).String(),
		LastEvent: snap.Last,
		Buttons:   make([]buttonCounts, 0, len(snap.Buttons)),
	}
	if snap.Last != "" {
		at := snap.LastAt
		resp.LastAt = &at
	}
	for _, b := range snap.Buttons {
		resp.Buttons = append(resp.Buttons, buttonCounts{
			Name:          b.Name,
			ShortReleases: b.Shorts,
			LongPresses:   b.Longs,
		})
	}

	writeJSON(w, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Unable to write response: ", err)
	}
}
