package equity

import (
	"context"
	"fmt"
	"math/rand"

	"PokerPal/internal/card"

	"golang.org/x/sync/errgroup"
)

// sampler runs Monte Carlo trials. Each worker owns its deck copy, RNG and
// counters; counters are summed once every worker is done.
type sampler struct {
	eval    Evaluator
	workers int
	batch   int
}

func (s *sampler) run(ctx context.Context, hands [][2]card.Card, board, residual []card.Card, numSims int, seed int64) (*Tally, error) {
	if numSims <= 0 {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("num_sims must be positive, got %d", numSims)}
	}
	toCome := MaxBoardSize - len(board)
	if toCome > len(residual) {
		return nil, invalidf("Not enough cards left to complete the board")
	}
	if toCome == 0 {
		return s.runComplete(ctx, hands, board, numSims)
	}

	workers := s.workers
	if workers > numSims {
		workers = numSims
	}
	if workers < 1 {
		workers = 1
	}

	// per-worker seeds come from one master stream so a single seed pins the run
	master := rand.New(rand.NewSource(seed))
	tallies := make([]*Tally, workers)
	per, rem := numSims/workers, numSims%workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		sims := per
		if w < rem {
			sims++
		}
		rng := rand.New(rand.NewSource(master.Int63()))
		tallies[w] = newTally(len(hands))
		w := w
		g.Go(func() error {
			return s.work(gctx, rng, hands, board, residual, sims, tallies[w])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally(len(hands))
	for _, t := range tallies {
		total.merge(t)
	}
	return total, nil
}

func (s *sampler) work(ctx context.Context, rng *rand.Rand, hands [][2]card.Card, board, residual []card.Card, sims int, t *Tally) error {
	pool := make([]card.Card, len(residual))
	copy(pool, residual)

	toCome := MaxBoardSize - len(board)
	simBoard := make([]card.Card, MaxBoardSize)
	copy(simBoard, board)
	scores := make([]Score, len(hands))

	for i := 0; i < sims; i++ {
		if i%s.batch == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		// partial Fisher-Yates: pool[:toCome] becomes a uniform draw without replacement
		for j := 0; j < toCome; j++ {
			r := j + rng.Intn(len(pool)-j)
			pool[j], pool[r] = pool[r], pool[j]
		}
		copy(simBoard[len(board):], pool[:toCome])

		if err := scoreHands(s.eval, simBoard, hands, scores); err != nil {
			return err
		}
		t.record(scores, 1)
	}
	return nil
}

// runComplete handles a fully dealt board: every trial would see the same
// board, so it is scored once and credited numSims times.
func (s *sampler) runComplete(ctx context.Context, hands [][2]card.Card, board []card.Card, numSims int) (*Tally, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scores := make([]Score, len(hands))
	if err := scoreHands(s.eval, board, hands, scores); err != nil {
		return nil, err
	}
	t := newTally(len(hands))
	t.record(scores, numSims)
	return t, nil
}

func scoreHands(ev Evaluator, board []card.Card, hands [][2]card.Card, scores []Score) error {
	for i, h := range hands {
		sc, err := ev.Evaluate(board, h)
		if err != nil {
			return &EvaluationError{Err: fmt.Errorf("player %d: %w", i+1, err)}
		}
		scores[i] = sc
	}
	return nil
}
