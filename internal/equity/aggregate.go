package equity

// Tally holds raw per-hand counts of a simulation.
//
// Every trial credits either one win to the sole best hand or one tie to each
// of the tied best hands, so sum(Wins) + TieTrials == Trials.
type Tally struct {
	Wins      []int
	Ties      []int
	Trials    int
	TieTrials int
}

func newTally(n int) *Tally {
	return &Tally{Wins: make([]int, n), Ties: make([]int, n)}
}

// record credits the outcome of scores n times.
func (t *Tally) record(scores []Score, n int) {
	best := scores[0]
	for _, sc := range scores[1:] {
		if sc < best {
			best = sc
		}
	}
	winners := 0
	for _, sc := range scores {
		if sc == best {
			winners++
		}
	}
	for i, sc := range scores {
		if sc != best {
			continue
		}
		if winners == 1 {
			t.Wins[i] += n
		} else {
			t.Ties[i] += n
		}
	}
	if winners > 1 {
		t.TieTrials += n
	}
	t.Trials += n
}

func (t *Tally) merge(o *Tally) {
	for i := range t.Wins {
		t.Wins[i] += o.Wins[i]
		t.Ties[i] += o.Ties[i]
	}
	t.Trials += o.Trials
	t.TieTrials += o.TieTrials
}

// Percentages converts counts to percentages of numSims. numSims must be
// positive; the sampler rejects anything else first.
func Percentages(t *Tally, numSims int) (win, tie []float64) {
	win = make([]float64, len(t.Wins))
	tie = make([]float64, len(t.Ties))
	for i := range t.Wins {
		win[i] = float64(t.Wins[i]) / float64(numSims) * 100
		tie[i] = float64(t.Ties[i]) / float64(numSims) * 100
	}
	return win, tie
}
