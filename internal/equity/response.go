package equity

import (
	"context"
	"errors"
)

// ErrorPlaceholder fills hand_rankings in error-shaped responses.
const ErrorPlaceholder = "Error"

// Response has the same field set whether the calculation succeeded or not;
// callers only check Error.
type Response struct {
	Wins           []int     `json:"wins"`
	Ties           []int     `json:"ties"`
	WinPercentages []float64 `json:"win_percentages"`
	TiePercentages []float64 `json:"tie_percentages"`
	HandRankings   []string  `json:"hand_rankings"`
	Error          string    `json:"error,omitempty"`
}

func (r *Result) Response() Response {
	return Response{
		Wins:           r.Tally.Wins,
		Ties:           r.Tally.Ties,
		WinPercentages: r.WinPercentages,
		TiePercentages: r.TiePercentages,
		HandRankings:   r.HandRankings,
	}
}

// ErrorResponse builds the error shape: n zeroed entries per array and
// "Error" for every ranking.
func ErrorResponse(n int, err error) Response {
	rankings := make([]string, n)
	for i := range rankings {
		rankings[i] = ErrorPlaceholder
	}
	return Response{
		Wins:           make([]int, n),
		Ties:           make([]int, n),
		WinPercentages: make([]float64, n),
		TiePercentages: make([]float64, n),
		HandRankings:   rankings,
		Error:          ErrorMessage(err),
	}
}

// ErrorMessage is the text shown to callers for err.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Calculation timed out"
	case errors.Is(err, context.Canceled):
		return "Calculation cancelled"
	default:
		return err.Error()
	}
}
