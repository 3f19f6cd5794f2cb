package progression

// Config holds every tunable constant of the progression rules. The exact
// curves are policy, not physics; these defaults are chosen for a steady
// but recoverable climb and are pinned by the package tests.
type Config struct {
	// AdvanceStreaks maps a bloom level to the consecutive-correct streak
	// required to advance past it. Higher levels demand longer streaks.
	// Level 6 has no entry: it is the ceiling.
	AdvanceStreaks map[int]int

	// RegressStreak is the consecutive-wrong streak that drops the bloom
	// level by one. It exists so a learner is never stuck at a level they
	// can no longer perform at.
	RegressStreak int

	// MasteryGain is the fraction of the remaining headroom (100 - score)
	// gained on a correct answer. Gains are large at low mastery and
	// shrink toward the ceiling.
	MasteryGain float64

	// MasteryPenalty is the flat mastery decay on an incorrect answer,
	// floored at zero.
	MasteryPenalty float64

	// StartEasiness is the easiness factor assigned to a fresh per-question
	// record.
	StartEasiness float64

	// MinEasiness is the floor the easiness factor can never drop below.
	MinEasiness float64

	// FirstIntervalDays and SecondIntervalDays seed the review schedule
	// for the first two successful repetitions; later intervals grow by
	// the easiness factor.
	FirstIntervalDays  int
	SecondIntervalDays int

	// MinIntervalDays is the review floor an incorrect answer resets the
	// interval to.
	MinIntervalDays int

	// MaxIntervalDays caps interval growth.
	MaxIntervalDays int
}

// DefaultConfig returns the standard progression policy.
func DefaultConfig() Config {
	return Config{
		AdvanceStreaks: map[int]int{
			1: 3,
			2: 3,
			3: 4,
			4: 4,
			5: 5,
		},
		RegressStreak:      3,
		MasteryGain:        0.15,
		MasteryPenalty:     10,
		StartEasiness:      2.5,
		MinEasiness:        1.3,
		FirstIntervalDays:  1,
		SecondIntervalDays: 6,
		MinIntervalDays:    1,
		MaxIntervalDays:    365,
	}
}

// advanceStreakFor returns the streak threshold for a bloom level, or 0
// when the level cannot advance.
func (c Config) advanceStreakFor(level int) int {
	return c.AdvanceStreaks[level]
}
