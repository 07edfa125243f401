package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/channels"
)

// TestSelectFairness races two equally-ready channels 1000 times with a
// fresh shuffle each time and checks that each side wins within 45%-55%,
// confirming the uniform random tie-break at Select's entry.
func TestSelectFairness(t *testing.T) {
	ctx := context.Background()
	const trials = 1000

	var aWins, bWins int
	for i := 0; i < trials; i++ {
		a := channels.NewChannel[int](1)
		b := channels.NewChannel[int](1)
		_, _ = a.TrySend(1)
		_, _ = b.TrySend(1)

		result, err := channels.Select(ctx, []channels.Case{
			channels.SelectableCase("a", a.RaceReceive()),
			channels.SelectableCase("b", b.RaceReceive()),
		})
		require.NoError(t, err)

		switch result.Key {
		case "a":
			aWins++
		case "b":
			bWins++
		default:
			t.Fatalf("unexpected winner %q", result.Key)
		}
	}

	require.InDelta(t, trials/2, aWins, float64(trials)*0.05+1)
	require.InDelta(t, trials/2, bWins, float64(trials)*0.05+1)
}
