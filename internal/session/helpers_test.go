package session_test

import (
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/session"
	"context"
	"fmt"
	"time"
)

type task struct {
	fn        func()
	delay     time.Duration
	cancelled bool
}

// manualScheduler queues callbacks until the test fires them.
type manualScheduler struct {
	tasks []*task
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &task{fn: fn, delay: d}
	s.tasks = append(s.tasks, t)
	return func() { t.cancelled = true }
}

// Pending counts callbacks that were neither run nor cancelled.
func (s *manualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Flush runs live callbacks until none are left.
func (s *manualScheduler) Flush() {
	for len(s.tasks) > 0 {
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		if !t.cancelled {
			t.fn()
		}
	}
}

// FireAll runs every queued callback, cancelled or not, the way a timer
// that lost the race with its cancel would.
func (s *manualScheduler) FireAll() {
	tasks := s.tasks
	s.tasks = nil
	for _, t := range tasks {
		t.fn()
	}
}

// scriptedCalculator answers with the first empty cell from its script.
type scriptedCalculator struct {
	script []int
	calls  int
}

func (c *scriptedCalculator) CalculateNextMove(_ context.Context, board game.Board, _ game.PlayerMark, _ bot.Difficulty) (int, error) {
	c.calls++
	for _, idx := range c.script {
		if board[idx] == game.None {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("script exhausted")
}

type recordingDisplay struct {
	snapshots []session.Snapshot
	notices   []session.Notice
}

func (d *recordingDisplay) Render(s session.Snapshot) { d.snapshots = append(d.snapshots, s) }
func (d *recordingDisplay) Notify(n session.Notice)   { d.notices = append(d.notices, n) }

func (d *recordingDisplay) last() session.Snapshot {
	if len(d.snapshots) == 0 {
		return session.Snapshot{}
	}
	return d.snapshots[len(d.snapshots)-1]
}

type recordingRecorder struct {
	conclusions []session.Conclusion
}

func (r *recordingRecorder) GameConcluded(c session.Conclusion) {
	r.conclusions = append(r.conclusions, c)
}

type harness struct {
	ctrl      *session.Controller
	scheduler *manualScheduler
	calc      *scriptedCalculator
	display   *recordingDisplay
	recorder  *recordingRecorder
}

func newHarness(ch session.Channel) *harness {
	h := &harness{
		scheduler: &manualScheduler{},
		calc:      &scriptedCalculator{script: []int{4, 0, 2, 6, 8, 1, 3, 5, 7}},
		display:   &recordingDisplay{},
		recorder:  &recordingRecorder{},
	}
	cfg := session.Config{
		Scheduler:  h.scheduler,
		Calculator: h.calc,
		Display:    h.display,
		Recorder:   h.recorder,
	}
	if ch != nil {
		cfg.Channel = ch
	}
	h.ctrl = session.NewController(cfg)
	return h
}

func boardOf(cells string) game.Board {
	var b game.Board
	for i, r := range cells {
		switch r {
		case 'X':
			b[i] = game.PlayerX
		case 'O':
			b[i] = game.PlayerO
		}
	}
	return b
}
