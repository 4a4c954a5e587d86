package service

import (
	"testing"

	"scriptbot/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveCoinFlip(t *testing.T) {
	tests := []struct {
		name      string
		actual    string
		guess     string
		wantWon   bool
		wantDelta int64
	}{
		{"correct guess wins the stake", "heads", "heads", true, 100},
		{"wrong guess loses the stake", "heads", "tails", false, -100},
		{"tails matching tails wins", "tails", "tails", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveCoinFlip(tt.actual, tt.guess, 100)

			assert.Equal(t, models.GameCoinFlip, result.Game)
			assert.Equal(t, int64(100), result.Stake)
			assert.Equal(t, tt.wantWon, result.Won)
			assert.Equal(t, tt.wantDelta, result.Delta)
			assert.Contains(t, result.Descriptor, tt.actual)
		})
	}
}

func TestResolveDice(t *testing.T) {
	tests := []struct {
		name      string
		roll      int
		stake     int64
		wantWon   bool
		wantDelta int64
	}{
		{"roll of 1 loses", 1, 100, false, -100},
		{"roll of 3 loses", 3, 100, false, -100},
		{"roll of 4 wins half the stake", 4, 100, true, 50},
		{"roll of 6 wins half the stake", 6, 100, true, 50},
		{"odd stake win is floored", 5, 25, true, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveDice(tt.roll, tt.stake)

			assert.Equal(t, models.GameDice, result.Game)
			assert.Equal(t, tt.wantWon, result.Won)
			assert.Equal(t, tt.wantDelta, result.Delta)
		})
	}
}

func TestResolveDice_DistinctOutcomeText(t *testing.T) {
	win := resolveDice(6, 100)
	loss := resolveDice(1, 100)

	assert.NotEqual(t, win.Descriptor, loss.Descriptor)
	assert.Contains(t, win.Descriptor, "6")
	assert.Contains(t, loss.Descriptor, "1")
}

func TestResolveSlots(t *testing.T) {
	tests := []struct {
		name      string
		reels     [3]string
		stake     int64
		wantWon   bool
		wantDelta int64
	}{
		{"three matching symbols pay 4x", [3]string{"⭐", "⭐", "⭐"}, 20, true, 80},
		{"first two matching pay the stake", [3]string{"🍒", "🍒", "🍋"}, 100, true, 100},
		{"last two matching pay the stake", [3]string{"🍋", "🍒", "🍒"}, 100, true, 100},
		{"outer pair pays the stake", [3]string{"🍒", "🍋", "🍒"}, 100, true, 100},
		{"no match loses the stake", [3]string{"🍒", "🍋", "🍊"}, 100, false, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveSlots(tt.reels, tt.stake)

			assert.Equal(t, models.GameSlots, result.Game)
			assert.Equal(t, tt.wantWon, result.Won)
			assert.Equal(t, tt.wantDelta, result.Delta)
			assert.Contains(t, result.Descriptor, tt.reels[0])
		})
	}
}

func TestPlayGame_UnknownGame(t *testing.T) {
	result, err := playGame(models.Game("roulette"), 100)

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Nil(t, result)
}

func TestPlayGame_DeltaAlwaysMatchesOutcome(t *testing.T) {
	games := []models.Game{models.GameCoinFlip, models.GameDice, models.GameSlots}

	for _, game := range games {
		for i := 0; i < 200; i++ {
			result, err := playGame(game, 100)

			assert.NoError(t, err)
			if result.Won {
				assert.Positive(t, result.Delta)
			} else {
				assert.Equal(t, int64(-100), result.Delta)
			}
		}
	}
}

func TestRollDaily_Ranges(t *testing.T) {
	for i := 0; i < 500; i++ {
		base, bonus := rollDaily()

		assert.GreaterOrEqual(t, base, int64(100))
		assert.Less(t, base, int64(600))
		assert.GreaterOrEqual(t, bonus, int64(0))
		assert.Less(t, bonus, int64(100))
	}
}
