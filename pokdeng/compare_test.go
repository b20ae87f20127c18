package pokdeng

import "testing"

func TestCompare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		player string
		dealer string
		want   Outcome
	}{
		{name: "pok nine beats pok eight", player: "9sKd", dealer: "8cKh", want: Win},
		{name: "pok eight loses to pok nine", player: "8cKh", dealer: "9sKd", want: Lose},
		{name: "equal poks push", player: "8cKh", dealer: "3s5d", want: Push},
		{name: "equal poks push despite pair", player: "4c4h", dealer: "8sJh", want: Push},
		{name: "pok beats plain nine built on three cards", player: "8dAh", dealer: "4s5dKc", want: Win},
		{name: "pok beats any score", player: "8cKh", dealer: "2s5hJd", want: Win},
		{name: "dealer pok beats plain hand", player: "3s4h", dealer: "9sKd", want: Lose},
		{name: "higher score wins", player: "3s4h", dealer: "2c3d", want: Win},
		{name: "lower score loses", player: "2c3d", dealer: "3s4h", want: Lose},
		{name: "losing pair stays a loss", player: "7s2h", dealer: "5c5d", want: Win},
		{name: "straight flush breaks score tie", player: "3h4h5h", dealer: "Qs2d", want: Win},
		{name: "tong beats straight at equal score", player: "KsKhKd", dealer: "TsJdQh", want: Win},
		{name: "straight beats flush at equal score", player: "4s5h6d", dealer: "2h3hTh", want: Win},
		{name: "pair breaks two card score tie", player: "5c5d", dealer: "QsKh", want: Win},
		{name: "equal score no specials push", player: "2s3h", dealer: "Ts5d", want: Push},
		{name: "equal score equal special push", player: "9sTdJc", dealer: "2c3d4h", want: Push},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			player := mustEvaluate(t, tc.player)
			dealer := mustEvaluate(t, tc.dealer)
			if got := Compare(player, dealer); got != tc.want {
				t.Errorf("Compare(%s, %s) = %s, want %s", player, dealer, got, tc.want)
			}
		})
	}
}

// compareFixtures is a spread of hand shapes used for the symmetry sweeps.
var compareFixtures = []string{
	"9sKd",   // pok 9
	"8cKh",   // pok 8
	"4c4h",   // pok 8 that is also a pair
	"5c5d",   // pair, score 0
	"KsKh",   // pair, score 0
	"7s2h",   // pok 9 via 7+2
	"3s4h",   // plain 7
	"QsKh",   // plain 0
	"2s3h",   // plain 5
	"3h4h5h", // straight flush, score 2
	"Qs2d",   // plain 2
	"KsKhKd", // tong, score 0
	"TsJdQh", // straight, score 0
	"4s5h6d", // straight, score 5
	"6c7d8h", // straight, score 1
	"2h3hTh", // flush, score 5
	"2s5hJd", // plain 7
	"4s5dKc", // plain 9 on three cards
}

func TestCompareAntisymmetric(t *testing.T) {
	t.Parallel()
	results := make([]HandResult, len(compareFixtures))
	for i, notation := range compareFixtures {
		results[i] = mustEvaluate(t, notation)
	}

	for i, a := range results {
		for j, b := range results {
			forward := Compare(a, b)
			backward := Compare(b, a)
			switch forward {
			case Win:
				if backward != Lose {
					t.Errorf("Compare(%s, %s) = Win but Compare(%s, %s) = %s",
						compareFixtures[i], compareFixtures[j], compareFixtures[j], compareFixtures[i], backward)
				}
			case Lose:
				if backward != Win {
					t.Errorf("Compare(%s, %s) = Lose but Compare(%s, %s) = %s",
						compareFixtures[i], compareFixtures[j], compareFixtures[j], compareFixtures[i], backward)
				}
			case Push:
				if backward != Push {
					t.Errorf("Push not symmetric for %s vs %s", compareFixtures[i], compareFixtures[j])
				}
			}
		}
	}
}

func TestCompareIdenticalHandsPush(t *testing.T) {
	t.Parallel()
	for _, notation := range compareFixtures {
		hr := mustEvaluate(t, notation)
		if got := Compare(hr, hr); got != Push {
			t.Errorf("Compare(%s, itself) = %s, want Push", notation, got)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()
	if Win.String() != "Win" || Lose.String() != "Lose" || Push.String() != "Push" {
		t.Error("Outcome.String() mismatch")
	}
}

func BenchmarkCompare(b *testing.B) {
	rules := DefaultRules()
	player, _ := Evaluate(MustParseCards("3h4h5h"), rules)
	dealer, _ := Evaluate(MustParseCards("Qs2d"), rules)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare(player, dealer)
	}
}
