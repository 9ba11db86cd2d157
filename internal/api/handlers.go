package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/game"
)

// maxBodyBytes bounds request bodies; every request body here is tiny.
const maxBodyBytes = 1 << 12

// CreateRequest is the optional body of POST /api/v1/games.
type CreateRequest struct {
	DevelBoard bool `json:"devel_board"`
}

// MoveRequest is the body of POST /api/v1/games/{id}/moves.
type MoveRequest struct {
	Direction string `json:"direction"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := game.NewSession(game.Options{
		Source:            s.opts.NewSource(),
		Spawn4Probability: s.opts.Spawn4Probability,
		LossPolicy:        s.opts.LossPolicy,
		DevelBoard:        req.DevelBoard,
		Origin:            "http",
	})

	s.mu.Lock()
	if len(s.sessions) >= s.opts.MaxSessions {
		s.mu.Unlock()
		s.writeError(w, http.StatusServiceUnavailable, "too many open games")
		return
	}
	s.sessions[session.ID()] = &entry{session: session, lastAccess: s.now()}
	s.mu.Unlock()

	w.Header().Set("Location", "/api/v1/games/"+session.ID())
	s.writeJSON(w, http.StatusCreated, session.View())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e := s.lookup(chi.URLParam(r, "id"))
	if e == nil {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	if !s.acquire(e) {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}
	v := e.session.View()
	e.mu.Unlock()

	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	e := s.lookup(chi.URLParam(r, "id"))
	if e == nil {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	var req MoveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dir, err := board.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.acquire(e) {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}
	out, err := e.session.Move(dir)
	v := e.session.View()
	e.mu.Unlock()

	switch {
	case errors.Is(err, board.ErrIllegalMove):
		s.writeError(w, http.StatusConflict, "illegal move")
		return
	case errors.Is(err, game.ErrLocked):
		s.writeError(w, http.StatusConflict, "game is lost, reset to continue")
		return
	case err != nil:
		s.logger.Error("move failed", "game", v.GameID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.record(out.Finished)
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	e := s.lookup(chi.URLParam(r, "id"))
	if e == nil {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	if !s.acquire(e) {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}
	out := e.session.Reset()
	v := e.session.View()
	e.mu.Unlock()

	s.record(out.Finished)
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	s.retire(e)
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a bounded JSON body into v. An empty body yields io.EOF.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
