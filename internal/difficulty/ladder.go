// Package difficulty implements the three-level adaptive ladder used both to
// parameterize question generation and to react to answer correctness.
package difficulty

// Level is the generation/adaptive difficulty level.
type Level string

const (
	Easy   Level = "easy"
	Medium Level = "medium"
	Hard   Level = "hard"
)

// CeilingPolicy selects what happens on a correct answer at the hard level.
type CeilingPolicy int

const (
	// CeilingSaturate keeps the level at hard on repeated correct answers.
	CeilingSaturate CeilingPolicy = iota

	// CeilingOscillate drops back to medium on a correct answer at hard,
	// alternating hard/medium for a consistently strong performer.
	CeilingOscillate
)

// Valid reports whether l is one of the three defined levels.
func (l Level) Valid() bool {
	return l == Easy || l == Medium || l == Hard
}

// Next returns the level following l: one step up on a correct answer, one
// step down on an incorrect one, bounded at both ends. The hard-and-correct
// case is governed by the ceiling policy. Unknown levels normalize to
// medium so the function is total.
func Next(l Level, correct bool, ceiling CeilingPolicy) Level {
	if !l.Valid() {
		l = Medium
	}

	if correct {
		switch l {
		case Easy:
			return Medium
		case Medium:
			return Hard
		default: // Hard
			if ceiling == CeilingOscillate {
				return Medium
			}
			return Hard
		}
	}

	switch l {
	case Hard:
		return Medium
	default: // Medium and Easy both floor at Easy
		return Easy
	}
}
