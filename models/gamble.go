package models

// Game selects a gambling game
type Game string

const (
	GameCoinFlip Game = "coinflip"
	GameDice     Game = "dice"
	GameSlots    Game = "slots"
)

// MinimumStake is the smallest stake any game accepts
const MinimumStake int64 = 10

// GambleResult is the outcome of a single gamble. It is never persisted
// beyond the balance delta it produced; NewBalance is the value returned by
// the store after the delta was applied, not a local estimate.
type GambleResult struct {
	Game       Game
	Stake      int64
	Won        bool
	Delta      int64
	NewBalance int64
	// Descriptor is the human-meaningful result: coin sides, a dice face,
	// or three reel symbols.
	Descriptor string
}

// DailyReward is the outcome of a daily claim
type DailyReward struct {
	Base       int64
	Bonus      int64
	NewBalance int64
}

// WarnResult reports a recorded warning along with the user's cumulative
// count and whether the escalation threshold has been reached. The advisory
// carries no enforcement action.
type WarnResult struct {
	Warning          *Warning
	WarningCount     int64
	ThresholdReached bool
}
