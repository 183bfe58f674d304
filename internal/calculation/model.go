package calculation

import (
	"time"

	"PokerPal/internal/equity"
)

// Request POST /calculate body, e.g.
//
//	{"hands": [["As","Kh"],["2c","3d"]], "board": ["Ac","Kd","2h"], "num_sims": 1000}
type Request struct {
	Hands   [][]string `json:"hands" binding:"required"`
	Board   []string   `json:"board" binding:"required"`
	NumSims *int       `json:"num_sims"`
	Seed    *int64     `json:"seed"` // 可选：固定种子可复现
}

func (r Request) toEquity() equity.Request {
	return equity.Request{
		Hands:   r.Hands,
		Board:   r.Board,
		NumSims: r.NumSims,
		Seed:    r.Seed,
	}
}

// Response is the equity response plus where it is stored.
type Response struct {
	ID     string `json:"id,omitempty"`
	Cached bool   `json:"cached"`
	equity.Response
}

// Record is one stored calculation.
type Record struct {
	ID        string          `json:"id"`
	Key       string          `json:"key,omitempty"`
	Request   Request         `json:"request"`
	Response  equity.Response `json:"response"`
	CreatedAt time.Time       `json:"createdAt"`
}
