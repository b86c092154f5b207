package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"katakilat/internal/dictionary"
	"katakilat/internal/game"
	"katakilat/internal/leaderboard"
	"katakilat/internal/store"
)

func testServer(t *testing.T) (*Server, *game.Session, *leaderboard.Board) {
	t.Helper()
	dict, err := dictionary.Load(nil)
	require.NoError(t, err)
	board := leaderboard.New(store.NewMemory(), zerolog.Nop())
	cfg := game.DefaultConfig()
	cfg.Seed = 1
	session := game.NewSession(dict, board, cfg, zerolog.Nop())
	return New(session, board, dict), session, board
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	return w
}

func TestHealthAndState(t *testing.T) {
	srv, _, _ := testServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/state", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Equal(t, game.PhaseMenu, snap.Phase)
}

func TestControlRequiresHostToken(t *testing.T) {
	t.Setenv("HOST_PASSWORD", "rahasia")
	t.Setenv("JWT_SECRET", "test-secret")
	srv, session, _ := testServer(t)

	w := doJSON(t, srv, http.MethodPost, "/control/start", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, game.PhaseMenu, session.Phase())

	// Wrong password.
	w = doJSON(t, srv, http.MethodPost, "/auth/login", "", `{"password":"salah"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Login, then start.
	w = doJSON(t, srv, http.MethodPost, "/auth/login", "", `{"password":"rahasia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = doJSON(t, srv, http.MethodPost, "/control/start", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, game.PhasePlaying, session.Phase())

	// Second start conflicts.
	w = doJSON(t, srv, http.MethodPost, "/control/start", login.Token, "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestControlOpenWithoutPassword(t *testing.T) {
	t.Setenv("HOST_PASSWORD", "")
	srv, session, _ := testServer(t)

	w := doJSON(t, srv, http.MethodPost, "/control/start", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, game.PhasePlaying, session.Phase())
}

func TestLeaderboardProjection(t *testing.T) {
	srv, _, board := testServer(t)
	board.RegisterWin("u1", "Udin", "a", 9)

	w := doJSON(t, srv, http.MethodGet, "/leaderboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Entries []leaderboard.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Entries, 1)
	require.Equal(t, 9, res.Entries[0].Score)
}

func TestDictionaryImport(t *testing.T) {
	t.Setenv("HOST_PASSWORD", "")
	srv, session, _ := testServer(t)

	body := `{"laptop":{"data":{"entri":[{"makna":[{"submakna":["komputer jinjing"]}]}]}}}`
	w := doJSON(t, srv, http.MethodPost, "/dictionary/import", "", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), `"imported":1`))

	// Imports are refused mid-round.
	require.NoError(t, session.Start())
	w = doJSON(t, srv, http.MethodPost, "/dictionary/import", "", body)
	require.Equal(t, http.StatusConflict, w.Code)
}
