package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"PokerPal/internal/card"
	"PokerPal/internal/equity"
	"PokerPal/internal/evaluator"
	"PokerPal/internal/game/dealer"
	"PokerPal/internal/utils"

	"github.com/pterm/pterm"
)

func main() {
	jsonArg := flag.String("json", "", `request JSON, e.g. '{"hands":[["As","Kh"],["2c","3d"]],"board":[]}'`)
	players := flag.Int("players", 0, "deal a random game for this many players (interactive mode)")
	sims := flag.Int("sims", equity.DefaultSims, "simulations per street in interactive mode")
	seed := flag.Int64("seed", 0, "deck and simulation seed (0 = random)")
	workers := flag.Int("workers", equity.DefaultWorkers, "simulation workers")
	logLevel := flag.String("log", "warn", "log level")
	flag.Parse()

	utils.Init(*logLevel)
	calc := equity.NewCalculator(evaluator.NewTreys(),
		equity.WithWorkers(*workers),
		equity.WithLogger(utils.Log),
	)
	ctx := context.Background()

	// JSON 模式：参数优先，其次 stdin（管道输入）
	if *jsonArg != "" {
		os.Exit(runJSON(ctx, calc, strings.NewReader(*jsonArg), os.Stdout))
	}
	if *players == 0 && stdinPiped() {
		os.Exit(runJSON(ctx, calc, os.Stdin, os.Stdout))
	}

	if *players == 0 {
		answer, err := pterm.DefaultInteractiveTextInput.WithDefaultText("How many players?").Show()
		if err != nil {
			os.Exit(0)
		}
		pterm.Println()
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			pterm.Error.Printfln("not a number: %q", answer)
			os.Exit(1)
		}
		*players = n
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if err := runInteractive(ctx, calc, *players, *sims, *seed); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func stdinPiped() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice == 0
}

// runJSON reads one request and writes the response JSON. Calculation errors
// are part of the response; only an unreadable request is a failure.
func runJSON(ctx context.Context, calc *equity.Calculator, in io.Reader, out io.Writer) int {
	var req equity.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		_ = json.NewEncoder(out).Encode(map[string]string{"error": fmt.Sprintf("invalid request: %v", err)})
		return 1
	}
	if err := json.NewEncoder(out).Encode(calc.Calculate(ctx, req)); err != nil {
		utils.Log.Error("write response", "err", err)
		return 1
	}
	return 0
}

var streets = []struct {
	name  string
	cards int
}{
	{"Preflop", 0}, {"Flop", 3}, {"Turn", 1}, {"River", 1},
}

// runInteractive deals a random game and prints odds after every street.
func runInteractive(ctx context.Context, calc *equity.Calculator, players, sims int, seed int64) error {
	if players < 1 {
		return errors.New("at least one player is required")
	}
	if players > equity.MaxHands {
		return fmt.Errorf("Maximum %d players allowed (not enough cards in deck)", equity.MaxHands)
	}

	d := dealer.NewDealer(seed)
	d.NewDeck()
	hands, err := d.DealHoleCards(players)
	if err != nil {
		return err
	}
	tokens := make([][]string, len(hands))
	for i, h := range hands {
		tokens[i] = card.Strings(h[:])
	}

	var board []card.Card
	for i, st := range streets {
		if st.cards > 0 {
			dealt, err := d.DealCommunity(st.cards)
			if err != nil {
				return err
			}
			board = append(board, dealt...)
		}

		n := sims
		s := seed + int64(i)
		res, err := calc.Simulate(ctx, equity.Request{
			Hands:   tokens,
			Board:   card.Strings(board),
			NumSims: &n,
			Seed:    &s,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(st.name), err)
		}

		pterm.DefaultSection.Printfln("%s odds", st.name)
		if len(board) > 0 {
			pterm.Info.Printfln("Board: %s", strings.Join(card.Pretties(board), " "))
		}
		if err := renderOdds(hands, res); err != nil {
			return err
		}
	}
	return nil
}

func renderOdds(hands [][2]card.Card, res *equity.Result) error {
	data := pterm.TableData{{"Player", "Hand", "Win %", "Chop %", "Ranking"}}
	for i, h := range hands {
		data = append(data, []string{
			fmt.Sprintf("Player %d", i+1),
			strings.Join(card.Pretties(h[:]), " "),
			fmt.Sprintf("%.2f", res.WinPercentages[i]),
			fmt.Sprintf("%.2f", res.TiePercentages[i]),
			res.HandRankings[i],
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
