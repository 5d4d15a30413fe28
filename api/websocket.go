package api

import (
	"net/http"
	"time"

	"amazons/engine"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type moveFrame struct {
	Type       string `json:"type"` // "move"
	Turn       int    `json:"turn"`
	Side       string `json:"side"`
	Move       []int  `json:"move"`
	MoveText   string `json:"move_text"`
	Iterations int64  `json:"iterations"`
	TreeSize   int    `json:"tree_size"`
	ElapsedMS  int64  `json:"elapsed_ms"`
}

type resultFrame struct {
	Type   string `json:"type"` // "result"
	Winner string `json:"winner"`
	Rounds int    `json:"rounds"`
	Moves  int    `json:"moves"`
}

// handleWatch upgrades to a websocket and streams one self-play game move
// by move, finishing with a result frame. An optional budget_ms query
// parameter sets the per-turn budget for both sides.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	cfg := s.config
	if ms := r.URL.Query().Get("budget_ms"); ms != "" {
		if budget, err := time.ParseDuration(ms + "ms"); err == nil && budget > 0 {
			cfg.TurnBudget = budget
			cfg.FirstTurnBudget = 2 * budget
		}
	}

	observer := func(pm engine.PlayedMove) {
		coords := pm.Move.Coords()
		frame := moveFrame{
			Type:       "move",
			Turn:       pm.Turn,
			Side:       pm.Side.String(),
			Move:       coords[:],
			MoveText:   pm.Move.String(),
			Iterations: pm.Metrics.Iterations,
			TreeSize:   pm.Metrics.TreeSize,
			ElapsedMS:  pm.Metrics.Duration.Milliseconds(),
		}
		if err := conn.WriteJSON(frame); err != nil {
			log.Debug().Err(err).Msg("watch client gone")
		}
	}

	result, err := engine.PlayLocalGame(cfg, cfg, observer)
	if err != nil {
		log.Error().Err(err).Msg("streamed game failed")
		return
	}

	if err := conn.WriteJSON(resultFrame{
		Type:   "result",
		Winner: result.Winner.String(),
		Rounds: result.Rounds,
		Moves:  len(result.Moves),
	}); err != nil {
		log.Debug().Err(err).Msg("watch client gone before result")
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
