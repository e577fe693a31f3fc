package scoreboard

import (
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/session"
	"sync"
)

const recentLimit = 10

// Stats are all-time totals since start or the last Reset. Recent holds
// the last few concluded games, oldest first.
type Stats struct {
	Total  int                  `json:"total"`
	XWins  int                  `json:"xWins"`
	OWins  int                  `json:"oWins"`
	Draws  int                  `json:"draws"`
	ByMode map[session.Mode]int `json:"byMode"`
	Recent []session.Conclusion `json:"recent"`
}

// Scoreboard aggregates concluded games. It implements session.Recorder and
// is safe to read from other goroutines while the hub records into it.
type Scoreboard struct {
	mu     sync.RWMutex
	stats  Stats
	recent []session.Conclusion
}

func New() *Scoreboard {
	return &Scoreboard{stats: Stats{ByMode: make(map[session.Mode]int)}}
}

// GameConcluded counts one finished game.
func (s *Scoreboard) GameConcluded(c session.Conclusion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case c.Result.Outcome == game.Draw:
		s.stats.Draws++
	case c.Result.Winner == game.PlayerX:
		s.stats.XWins++
	case c.Result.Winner == game.PlayerO:
		s.stats.OWins++
	default:
		return
	}
	s.stats.Total++
	s.stats.ByMode[c.Mode]++

	s.recent = append(s.recent, c)
	if len(s.recent) > recentLimit {
		s.recent = s.recent[len(s.recent)-recentLimit:]
	}
}

// Stats returns a copy of the totals and the recent games.
func (s *Scoreboard) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.stats
	out.ByMode = make(map[session.Mode]int, len(s.stats.ByMode))
	for k, v := range s.stats.ByMode {
		out.ByMode[k] = v
	}
	out.Recent = append([]session.Conclusion{}, s.recent...)
	return out
}

// Reset clears all totals.
func (s *Scoreboard) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Stats{ByMode: make(map[session.Mode]int)}
	s.recent = nil
}
