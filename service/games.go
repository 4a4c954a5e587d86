package service

import (
	"fmt"
	"math/rand"

	"scriptbot/models"
)

var coinSides = []string{"heads", "tails"}

var slotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "⭐", "💎"}

// playGame draws the randomness for one round and resolves the payout.
// Resolution is split out so the payout table is testable without seeding.
func playGame(game models.Game, stake int64) (*models.GambleResult, error) {
	switch game {
	case models.GameCoinFlip:
		actual := coinSides[rand.Intn(len(coinSides))]
		guess := coinSides[rand.Intn(len(coinSides))]
		return resolveCoinFlip(actual, guess, stake), nil

	case models.GameDice:
		roll := rand.Intn(6) + 1
		return resolveDice(roll, stake), nil

	case models.GameSlots:
		reels := [3]string{
			slotSymbols[rand.Intn(len(slotSymbols))],
			slotSymbols[rand.Intn(len(slotSymbols))],
			slotSymbols[rand.Intn(len(slotSymbols))],
		}
		return resolveSlots(reels, stake), nil

	default:
		return nil, fmt.Errorf("unknown game %q: %w", game, models.ErrInvalidArgument)
	}
}

// resolveCoinFlip wins when the guessed side matches the actual side,
// paying the stake back double
func resolveCoinFlip(actual, guess string, stake int64) *models.GambleResult {
	won := actual == guess
	delta := -stake
	if won {
		delta = stake
	}

	return &models.GambleResult{
		Game:       models.GameCoinFlip,
		Stake:      stake,
		Won:        won,
		Delta:      delta,
		Descriptor: fmt.Sprintf("The coin landed on **%s**! You guessed **%s**.", actual, guess),
	}
}

// resolveDice wins on a roll of 4 or higher, paying 1.5x the stake back
// (floored to whole coins)
func resolveDice(roll int, stake int64) *models.GambleResult {
	won := roll >= 4
	delta := -stake
	if won {
		delta = stake / 2
	}

	outcome := "You needed 4+ to win."
	if won {
		outcome = "4+ wins!"
	}

	return &models.GambleResult{
		Game:       models.GameDice,
		Stake:      stake,
		Won:        won,
		Delta:      delta,
		Descriptor: fmt.Sprintf("You rolled a **%d**! %s", roll, outcome),
	}
}

// resolveSlots pays 5x the stake back when all three reels match and 2x
// when exactly two match
func resolveSlots(reels [3]string, stake int64) *models.GambleResult {
	var won bool
	var delta int64

	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		won = true
		delta = 4 * stake // Jackpot!
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		won = true
		delta = stake
	default:
		won = false
		delta = -stake
	}

	return &models.GambleResult{
		Game:       models.GameSlots,
		Stake:      stake,
		Won:        won,
		Delta:      delta,
		Descriptor: fmt.Sprintf("%s | %s | %s", reels[0], reels[1], reels[2]),
	}
}

// rollDaily draws the daily reward amounts: a base in [100,600) and an
// independent bonus in [0,100)
func rollDaily() (base, bonus int64) {
	return rand.Int63n(500) + 100, rand.Int63n(100)
}
