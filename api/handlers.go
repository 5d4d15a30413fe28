package api

import (
	"encoding/json"
	"net/http"
	"time"

	"amazons/engine"
	"amazons/game"

	"github.com/rs/zerolog/log"
)

type analyzeRequest struct {
	// Board is eight rows of eight characters: '.' empty, 'B' black,
	// 'W' white, 'X' burned. Omitted for the starting position.
	Board    []string `json:"board,omitempty"`
	Player   string   `json:"player"`
	Turn     int      `json:"turn,omitempty"`
	BudgetMS int      `json:"budget_ms,omitempty"`
}

type analyzeResponse struct {
	HasMove    bool    `json:"has_move"`
	Move       []int   `json:"move,omitempty"`
	MoveText   string  `json:"move_text,omitempty"`
	Value      float64 `json:"value"`
	Iterations int64   `json:"iterations"`
	TreeSize   int     `json:"tree_size"`
	ElapsedMS  int64   `json:"elapsed_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs a single cold search on the posted position and
// returns the chosen move with its win estimate.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	player, err := game.ParsePlayer(req.Player)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	board := game.NewBoard()
	if len(req.Board) > 0 {
		board, err = game.ParseBoard(req.Board)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	turn := req.Turn
	if turn <= 0 {
		turn = 1
	}
	budget := s.config.TurnBudget
	if req.BudgetMS > 0 {
		budget = time.Duration(req.BudgetMS) * time.Millisecond
	}

	tc := engine.NewTurnController(s.config)
	tc.InitializePosition(board, turn, player)
	move, metrics, ok := tc.Decide(time.Now().Add(budget))

	resp := analyzeResponse{
		HasMove:    ok,
		Value:      tc.Value(),
		Iterations: metrics.Iterations,
		TreeSize:   metrics.TreeSize,
		ElapsedMS:  metrics.Duration.Milliseconds(),
	}
	if ok {
		coords := move.Coords()
		resp.Move = coords[:]
		resp.MoveText = move.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
