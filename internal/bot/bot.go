package bot

import (
	"arcade/tictactoe/internal/game"
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// Calculator is the computer opponent the turn controller calls. It owns the
// random source used by the easy and medium strategies.
type Calculator struct {
	mu    sync.Mutex
	rng   RNG
	nodes metric.Int64Histogram
}

// NewCalculator creates a calculator drawing from rng. A nil rng gets a
// freshly seeded PCG source.
func NewCalculator(rng RNG) *Calculator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	nodes, err := meter.Int64Histogram("tictactoe.search.nodes",
		metric.WithDescription("Minimax nodes visited per computer move"))
	if err != nil {
		otel.Handle(err)
	}
	return &Calculator{rng: rng, nodes: nodes}
}

// CalculateNextMove returns the cell the computer playing mark takes on board.
func (c *Calculator) CalculateNextMove(ctx context.Context, board game.Board, mark game.PlayerMark, difficulty Difficulty) (int, error) {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(mark)),
		attribute.String("bot.difficulty", string(difficulty)),
		attribute.Int("board.empty", len(board.EmptyCells())),
	))
	defer span.End()

	c.mu.Lock()
	index, nodes, err := chooseMove(board, mark, difficulty, c.rng)
	c.mu.Unlock()
	if err != nil {
		slog.WarnContext(ctx, "Computer has no move", "bot.mark", mark, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "No legal move")
		return -1, err
	}

	span.SetAttributes(attribute.Int("move.index", index), attribute.Int("search.nodes", nodes))
	if c.nodes != nil && nodes > 0 {
		c.nodes.Record(ctx, int64(nodes), metric.WithAttributes(attribute.String("bot.difficulty", string(difficulty))))
	}
	slog.DebugContext(ctx, "Computer chose move", "bot.mark", mark, "bot.difficulty", difficulty, "move.index", index, "search.nodes", nodes)
	return index, nil
}
