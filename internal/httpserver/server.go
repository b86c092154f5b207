// internal/httpserver/server.go
//
// HTTP surface for the live game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public read-only projections: "/", "/health", "/state", "/leaderboard".
//   - Host control routes (token-gated): start, pause/resume, dictionary
//     import, leaderboard reset.
//
// Everything here is a thin adapter; game rules live in internal/game.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"katakilat/internal/dictionary"
	"katakilat/internal/game"
	"katakilat/internal/leaderboard"
)

// Server bundles the router with the game collaborators.
type Server struct {
	r       *chi.Mux
	session *game.Session
	board   *leaderboard.Board
	dict    *dictionary.Dictionary
	auth    *hostAuth
}

// New constructs a Server, installs middleware, and registers routes.
func New(session *game.Session, board *leaderboard.Board, dict *dictionary.Dictionary) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		session: session,
		board:   board,
		dict:    dict,
		auth:    newHostAuth(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"katakilat","endpoints":["/health","/state","/leaderboard","POST /auth/login","POST /control/start"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/dictionary", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.dict.Len()})
	})

	// --- projections ---
	s.r.Get("/state", s.handleState)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// --- host panel ---
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Group(func(r chi.Router) {
		r.Use(s.auth.requireHost)
		r.Post("/control/start", s.handleStart)
		r.Post("/control/pause", s.handlePause)
		r.Post("/control/resume", s.handleResume)
		r.Post("/leaderboard/reset", s.handleReset)
		r.Post("/dictionary/import", s.handleImport)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for the overlay origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------- projections ----------------------------------

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.session.Snapshot())
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": s.board.Snapshot()})
}

// ------------------------------ host panel ---------------------------------

type loginReq struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.auth.enabled() {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "open": true})
		return
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !s.auth.checkPassword(req.Password) {
		http.Error(w, `{"error":"invalid_password"}`, http.StatusUnauthorized)
		return
	}
	token, exp, err := s.auth.signToken()
	if err != nil {
		log.Error().Err(err).Msg("sign host token")
		http.Error(w, `{"error":"token_failed"}`, http.StatusInternalServerError)
		return
	}
	setHostCookie(w, token, exp)
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Start(); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.controlResult(w, s.session.Pause())
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.controlResult(w, s.session.Resume())
}

func (s *Server) controlResult(w http.ResponseWriter, err error) {
	if errors.Is(err, game.ErrNotPausable) {
		http.Error(w, `{"error":"not_pausable"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.board.Reset()
	log.Info().Msg("leaderboard reset by host")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleImport merges a bulk dictionary document. The session arbitrates
// the merge so it can never land mid-round.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	entries, err := dictionary.ParseRaw(r.Body)
	if err != nil {
		http.Error(w, `{"error":"bad_dictionary"}`, http.StatusBadRequest)
		return
	}
	n, err := s.session.ImportEntries(entries)
	if errors.Is(err, game.ErrRoundActive) {
		http.Error(w, `{"error":"round_in_progress"}`, http.StatusConflict)
		return
	}
	log.Info().Int("words", n).Int("total", s.dict.Len()).Msg("dictionary import")
	_ = json.NewEncoder(w).Encode(map[string]int{"imported": n, "total": s.dict.Len()})
}
