package searcher

import "time"

// TimeLeft reports the time remaining for the current move. A negative
// value after the move is returned forfeits the game.
type TimeLeft func() time.Duration

// Countdown returns a TimeLeft that starts counting down from limit now.
func Countdown(limit time.Duration) TimeLeft {
	start := time.Now()
	return func() time.Duration {
		return limit - time.Since(start)
	}
}

// Budget is the immutable time allowance threaded through a search. The
// search must abort once less than threshold remains.
type Budget struct {
	timeLeft  TimeLeft
	threshold time.Duration
}

func NewBudget(timeLeft TimeLeft, threshold time.Duration) Budget {
	return Budget{timeLeft: timeLeft, threshold: threshold}
}

// Unlimited never expires.
func Unlimited() Budget {
	return Budget{}
}

func (b Budget) Exceeded() bool {
	if b.timeLeft == nil {
		return false
	}
	return b.timeLeft() < b.threshold
}
