package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCanonicalises(t *testing.T) {
	hands, board, err := Validate([][]string{{"as", "KH"}, {"2C", "3d"}}, []string{"ac", "kD", "2h"})
	require.NoError(t, err)

	assert.Equal(t, "As", hands[0][0].String())
	assert.Equal(t, "Kh", hands[0][1].String())
	assert.Equal(t, "2c", hands[1][0].String())
	assert.Equal(t, []string{"Ac", "Kd", "2h"}, []string{board[0].String(), board[1].String(), board[2].String()})
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name  string
		hands [][]string
		board []string
		msg   string
	}{
		{"no hands", nil, nil, "At least one hand is required"},
		{"three cards", [][]string{{"As", "Kh"}, {"2c", "3d", "4d"}}, nil, "Player 2 must have exactly 2 cards"},
		{"one card", [][]string{{"As"}, {"2c", "3d"}}, nil, "Player 1 must have exactly 2 cards"},
		{"bad rank", [][]string{{"As", "Kh"}, {"1c", "3d"}}, nil, "Invalid card '1c' for Player 2"},
		{"bad suit", [][]string{{"Ax", "Kh"}}, nil, "Invalid card 'Ax' for Player 1"},
		{"long token", [][]string{{"10s", "Kh"}}, nil, "Invalid card '10s' for Player 1"},
		{"duplicate across hands", [][]string{{"As", "Kh"}, {"as", "2c"}}, nil, "Duplicate card 'As' found"},
		{"bad board card", [][]string{{"As", "Kh"}}, []string{"Ac", "Zz"}, "Invalid board card 'Zz' at position 2"},
		{"board duplicates hand", [][]string{{"As", "Kh"}}, []string{"KH"}, "Duplicate card 'Kh' found in board"},
		{"board too long", [][]string{{"As", "Kh"}}, []string{"2c", "3c", "4c", "5c", "6c", "7c"}, "Board cannot have more than 5 cards"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Validate(tc.hands, tc.board)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestValidateTooManyHands(t *testing.T) {
	hands := make([][]string, MaxHands+1)
	for i := range hands {
		hands[i] = []string{"As", "Kh"}
	}
	_, _, err := Validate(hands, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maximum 22 players")
}

func TestDescribePreflop(t *testing.T) {
	cases := map[[2]string]string{
		{"As", "Ah"}: "Pair of As",
		{"Ks", "Qs"}: "Suited KQ",
		{"7h", "8d"}: "Connector 78",
		{"2h", "9c"}: "High Card 29",
		{"Ah", "2d"}: "High Card A2",
		{"Td", "Jc"}: "Connector TJ",
		{"8s", "7s"}: "Suited 87",
	}
	for in, want := range cases {
		h := mustHands(in)[0]
		assert.Equal(t, want, DescribePreflop(h), "%v", in)
	}
}

func TestDescribeUsesEvaluatorOnBoard(t *testing.T) {
	ev := &fixedEval{scores: mustScores(map[string]Score{"As": 3})}
	name, err := Describe(ev, mustCards("Ac", "Kd", "2h"), mustHands([2]string{"As", "Ks"})[0])
	require.NoError(t, err)
	assert.Equal(t, "Class 3", name)

	name, err = Describe(ev, nil, mustHands([2]string{"As", "Ks"})[0])
	require.NoError(t, err)
	assert.Equal(t, "Suited AK", name)
}
