// Package equity estimates hold'em win and tie probabilities by Monte Carlo
// simulation: the board is completed at random many times and every hand is
// scored by an injected Evaluator.
package equity

import (
	"context"
	"fmt"
	"time"

	"PokerPal/internal/card"

	"github.com/charmbracelet/log"
)

const (
	DefaultSims      = 1000
	DefaultWorkers   = 4
	DefaultBatchSize = 256
)

// Request is the caller-facing input. NumSims defaults to the calculator's
// default (DefaultSims unless configured) and Seed to a time based value.
type Request struct {
	Hands   [][]string `json:"hands"`
	Board   []string   `json:"board"`
	NumSims *int       `json:"num_sims,omitempty"`
	Seed    *int64     `json:"seed,omitempty"`
}

// Result is a finished simulation. Slices are indexed like the input hands.
type Result struct {
	Hands          [][2]card.Card
	Board          []card.Card
	NumSims        int
	Seed           int64
	Tally          *Tally
	WinPercentages []float64
	TiePercentages []float64
	HandRankings   []string
}

type Calculator struct {
	eval        Evaluator
	workers     int
	batch       int
	defaultSims int
	maxSims     int
	log         *log.Logger
}

type Option func(*Calculator)

// WithWorkers sets how many goroutines share the trials.
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBatchSize sets how many trials run between cancellation checks.
func WithBatchSize(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.batch = n
		}
	}
}

// WithDefaultSims sets num_sims for requests that leave it out.
func WithDefaultSims(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.defaultSims = n
		}
	}
}

// WithMaxSims caps num_sims; 0 disables the cap.
func WithMaxSims(n int) Option {
	return func(c *Calculator) {
		c.maxSims = n
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

func NewCalculator(ev Evaluator, opts ...Option) *Calculator {
	c := &Calculator{
		eval:        ev,
		workers:     DefaultWorkers,
		batch:       DefaultBatchSize,
		defaultSims: DefaultSims,
		log:         log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Simulate validates req, runs the trials and describes every hand. Errors
// are *ValidationError, *ConfigurationError, *EvaluationError or the context
// error when ctx ends first; no partial result is returned.
func (c *Calculator) Simulate(ctx context.Context, req Request) (*Result, error) {
	hands, board, err := Validate(req.Hands, req.Board)
	if err != nil {
		return nil, err
	}

	numSims := c.defaultSims
	if req.NumSims != nil {
		numSims = *req.NumSims
	}
	if numSims <= 0 {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("num_sims must be positive, got %d", numSims)}
	}
	if c.maxSims > 0 && numSims > c.maxSims {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("num_sims must be at most %d, got %d", c.maxSims, numSims)}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	residual, err := card.Residual(usedCards(hands, board))
	if err != nil {
		return nil, fmt.Errorf("residual deck: %w", err)
	}

	start := time.Now()
	s := &sampler{eval: c.eval, workers: c.workers, batch: c.batch}
	tally, err := s.run(ctx, hands, board, residual, numSims, seed)
	if err != nil {
		return nil, err
	}
	win, tie := Percentages(tally, numSims)

	c.log.Debug("simulation finished",
		"hands", len(hands),
		"board", card.Strings(board),
		"sims", numSims,
		"seed", seed,
		"took", time.Since(start))

	return &Result{
		Hands:          hands,
		Board:          board,
		NumSims:        numSims,
		Seed:           seed,
		Tally:          tally,
		WinPercentages: win,
		TiePercentages: tie,
		HandRankings:   c.rankings(board, hands),
	}, nil
}

// rankings describes every hand. A board the evaluator cannot score (one or
// two cards) yields "Error: ..." for that hand instead of failing the request.
func (c *Calculator) rankings(board []card.Card, hands [][2]card.Card) []string {
	out := make([]string, len(hands))
	for i, h := range hands {
		name, err := Describe(c.eval, board, h)
		if err != nil {
			c.log.Warn("hand description failed", "player", i+1, "err", err)
			name = "Error: " + err.Error()
		}
		out[i] = name
	}
	return out
}

// Calculate is Simulate with every failure folded into the error-shaped
// Response. It never returns a partial result.
func (c *Calculator) Calculate(ctx context.Context, req Request) Response {
	res, err := c.Simulate(ctx, req)
	if err != nil {
		c.log.Info("calculation rejected", "err", err)
		return ErrorResponse(len(req.Hands), err)
	}
	return res.Response()
}
