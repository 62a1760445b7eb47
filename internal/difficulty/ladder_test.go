package difficulty

import "testing"

func TestNext_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		current Level
		correct bool
		want    Level
	}{
		{"easy correct", Easy, true, Medium},
		{"medium correct", Medium, true, Hard},
		{"hard correct saturates", Hard, true, Hard},
		{"easy incorrect", Easy, false, Easy},
		{"medium incorrect", Medium, false, Easy},
		{"hard incorrect", Hard, false, Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.current, tt.correct, CeilingSaturate)
			if got != tt.want {
				t.Errorf("Next(%s, %v) = %s, want %s", tt.current, tt.correct, got, tt.want)
			}
		})
	}
}

func TestNext_OscillatingCeiling(t *testing.T) {
	if got := Next(Hard, true, CeilingOscillate); got != Medium {
		t.Errorf("Next(hard, true, oscillate) = %s, want medium", got)
	}
	// Incorrect behavior is policy-independent.
	if got := Next(Hard, false, CeilingOscillate); got != Medium {
		t.Errorf("Next(hard, false, oscillate) = %s, want medium", got)
	}
}

func TestNext_UnknownLevelNormalizes(t *testing.T) {
	if got := Next(Level("impossible"), true, CeilingSaturate); got != Hard {
		t.Errorf("Next(unknown, true) = %s, want hard (via medium)", got)
	}
	if got := Next(Level(""), false, CeilingSaturate); got != Easy {
		t.Errorf("Next(unknown, false) = %s, want easy (via medium)", got)
	}
}

func TestNext_NeverLeavesLadder(t *testing.T) {
	// Walk every correctness sequence of length 8 from every start level.
	for _, start := range []Level{Easy, Medium, Hard} {
		for mask := 0; mask < 1<<8; mask++ {
			l := start
			for i := 0; i < 8; i++ {
				l = Next(l, mask&(1<<i) != 0, CeilingSaturate)
				if !l.Valid() {
					t.Fatalf("ladder left valid set: start=%s mask=%b level=%q", start, mask, l)
				}
			}
		}
	}
}
