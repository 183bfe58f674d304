package calculation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PokerPal/internal/card"
	"PokerPal/internal/equity"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Service struct {
	calc    *equity.Calculator
	repo    Repo
	ttl     time.Duration // 结果保留时长
	timeout time.Duration // 单次计算上限，超出按超时处理
	log     *log.Logger
}

func NewService(calc *equity.Calculator, repo Repo, ttl, timeout time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{calc: calc, repo: repo, ttl: ttl, timeout: timeout, log: logger}
}

// Calculate runs (or replays) one request. The returned Response is always
// usable: on failure it is the error-shaped response and err carries the
// cause so callers can pick a status. Seeded requests are deterministic, so
// an identical earlier result is served from the repo with Cached set.
func (s *Service) Calculate(ctx context.Context, req Request) (Response, error) {
	// 先校验，缓存只对合法请求生效
	hands, board, err := equity.Validate(req.Hands, req.Board)
	if err != nil {
		s.log.Info("calculation rejected", "hands", len(req.Hands), "err", err)
		return Response{Response: equity.ErrorResponse(len(req.Hands), err)}, err
	}

	key := requestKey(hands, board, req.NumSims, req.Seed)
	if key != "" {
		rec, err := s.repo.FindByKey(ctx, key)
		if err != nil {
			s.log.Warn("cache lookup failed", "key", key, "err", err)
		}
		if rec != nil {
			return Response{ID: rec.ID, Cached: true, Response: rec.Response}, nil
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.calc.Simulate(ctx, req.toEquity())
	if err != nil {
		s.log.Info("calculation rejected", "hands", len(req.Hands), "err", err)
		return Response{Response: equity.ErrorResponse(len(req.Hands), err)}, err
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Key:       key,
		Request:   req,
		Response:  res.Response(),
		CreatedAt: time.Now(),
	}
	// 存储失败不影响本次返回
	if err := s.repo.Save(context.WithoutCancel(ctx), rec, s.ttl); err != nil {
		s.log.Warn("save calculation failed", "id", rec.ID, "err", err)
		return Response{Response: rec.Response}, nil
	}
	return Response{ID: rec.ID, Response: rec.Response}, nil
}

// Get returns nil, nil for an unknown id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.Get(ctx, id)
}

// requestKey identifies a validated seeded request by its canonical cards,
// e.g. "As-Kh,2c-3d|Ac-Kd-2h|1000|42". Unseeded requests are random and get
// no key.
func requestKey(hands [][2]card.Card, board []card.Card, numSims *int, seed *int64) string {
	if seed == nil {
		return ""
	}
	hs := make([]string, len(hands))
	for i, h := range hands {
		hs[i] = strings.Join(card.Strings(h[:]), "-")
	}
	sims := "default"
	if numSims != nil {
		sims = fmt.Sprint(*numSims)
	}
	return fmt.Sprintf("%s|%s|%s|%d", strings.Join(hs, ","), strings.Join(card.Strings(board), "-"), sims, *seed)
}
