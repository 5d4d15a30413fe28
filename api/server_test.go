package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"amazons/engine"
	"amazons/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func testServer() *Server {
	cfg := engine.DefaultConfig()
	cfg.FirstTurnBudget = 30 * time.Millisecond
	cfg.TurnBudget = 15 * time.Millisecond
	cfg.SafetyMargin = time.Millisecond
	cfg.Seed = 11
	return NewServer(cfg)
}

func postAnalyze(t *testing.T, handler http.Handler, req analyzeRequest) (int, analyzeResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/api/analyze", bytes.NewReader(body)))

	var resp analyzeResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec.Code, resp
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyze(t *testing.T) {
	handler := testServer().Handler()

	t.Run("starting position yields a legal move", func(t *testing.T) {
		code, resp := postAnalyze(t, handler, analyzeRequest{Player: "black", BudgetMS: 20})

		require.Equal(t, http.StatusOK, code)
		require.True(t, resp.HasMove)
		require.Len(t, resp.Move, 6)
		require.NotEmpty(t, resp.MoveText)
		require.Greater(t, resp.Iterations, int64(0))
		require.Greater(t, resp.Value, 0.0)
		require.Less(t, resp.Value, 1.0)

		board := game.NewBoard()
		require.Equal(t, int8(game.Black),
			board.Cell(int8(resp.Move[0]), int8(resp.Move[1])),
			"move should start from a black piece")
	})

	t.Run("enclosed side has no move", func(t *testing.T) {
		code, resp := postAnalyze(t, handler, analyzeRequest{
			Board: []string{
				"BBX..W..",
				"BBX.....",
				"XXX..W..",
				"........",
				".....W..",
				"........",
				".....W..",
				"........",
			},
			Player: "black",
			Turn:   12,
		})

		require.Equal(t, http.StatusOK, code)
		require.False(t, resp.HasMove)
		require.Empty(t, resp.Move)
	})

	t.Run("bad requests are rejected", func(t *testing.T) {
		code, _ := postAnalyze(t, handler, analyzeRequest{Player: "purple"})
		require.Equal(t, http.StatusBadRequest, code)

		code, _ = postAnalyze(t, handler, analyzeRequest{
			Player: "black",
			Board:  []string{"too", "short"},
		})
		require.Equal(t, http.StatusBadRequest, code)

		code, _ = postAnalyze(t, handler, analyzeRequest{
			Player: "black",
			Board: []string{
				"BBBBB...",
				"........",
				"........",
				"........",
				"........",
				"W..W.W.W",
				"........",
				"........",
			},
		})
		require.Equal(t, http.StatusBadRequest, code,
			"an overfull board must be rejected, not searched")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(
			http.MethodPost, "/api/analyze", strings.NewReader("{not json")))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWatchStreamsGame(t *testing.T) {
	srv := httptest.NewServer(testServer().Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/watch?budget_ms=5"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var moves int
	for {
		var frame map[string]any
		require.NoError(t, conn.ReadJSON(&frame))

		switch frame["type"] {
		case "move":
			moves++
			require.Contains(t, []any{"black", "white"}, frame["side"])
			require.Len(t, frame["move"], 6)
		case "result":
			require.Greater(t, moves, 0, "result should follow at least one move")
			require.Contains(t, []any{"black", "white"}, frame["winner"])
			require.EqualValues(t, moves, frame["moves"])
			return
		default:
			t.Fatalf("unexpected frame type %v", frame["type"])
		}
	}
}
