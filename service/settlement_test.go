package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wonbot/models"
)

func TestCompareDice(t *testing.T) {
	assert.Equal(t, models.OutcomeWin, CompareDice(6, 3))
	assert.Equal(t, models.OutcomeLoss, CompareDice(2, 5))
	assert.Equal(t, models.OutcomeTie, CompareDice(4, 4))
}

func TestCompareRPS(t *testing.T) {
	cases := []struct {
		a, b models.Move
		want models.Outcome
	}{
		{models.MoveRock, models.MoveScissors, models.OutcomeWin},
		{models.MoveScissors, models.MovePaper, models.OutcomeWin},
		{models.MovePaper, models.MoveRock, models.OutcomeWin},
		{models.MoveScissors, models.MoveRock, models.OutcomeLoss},
		{models.MovePaper, models.MoveScissors, models.OutcomeLoss},
		{models.MoveRock, models.MovePaper, models.OutcomeLoss},
		{models.MoveRock, models.MoveRock, models.OutcomeTie},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CompareRPS(c.a, c.b), "%s vs %s", c.a, c.b)
	}
}

func TestSettleSolo(t *testing.T) {
	t.Run("win credits double the bet", func(t *testing.T) {
		ledger := newTestLedger(t, 0)
		registerWith(t, ledger, "alice", 100)

		result, err := settleSolo(ledger, "alice", 30, models.OutcomeWin)
		require.NoError(t, err)
		assert.Equal(t, "alice", result.WinnerID)
		assert.Equal(t, int64(60), result.Deltas["alice"])
		assert.Equal(t, int64(160), result.NewBalances["alice"])
		assert.Equal(t, int64(160), ledger.Balance("alice"))
	})

	t.Run("loss debits exactly the bet", func(t *testing.T) {
		ledger := newTestLedger(t, 0)
		registerWith(t, ledger, "alice", 100)

		result, err := settleSolo(ledger, "alice", 30, models.OutcomeLoss)
		require.NoError(t, err)
		assert.Equal(t, "alice", result.LoserID)
		assert.Equal(t, int64(-30), result.Deltas["alice"])
		assert.Equal(t, int64(70), ledger.Balance("alice"))
	})

	t.Run("tie changes nothing", func(t *testing.T) {
		ledger := newTestLedger(t, 0)
		registerWith(t, ledger, "alice", 100)

		result, err := settleSolo(ledger, "alice", 30, models.OutcomeTie)
		require.NoError(t, err)
		assert.Empty(t, result.WinnerID)
		assert.Empty(t, result.LoserID)
		assert.Equal(t, int64(0), result.Deltas["alice"])
		assert.Equal(t, int64(100), ledger.Balance("alice"))
	})
}

func TestSettleDuel(t *testing.T) {
	t.Run("transfer is zero sum", func(t *testing.T) {
		ledger := newTestLedger(t, 0)
		registerWith(t, ledger, "alice", 100)
		registerWith(t, ledger, "bob", 100)

		result, err := settleDuel(ledger, "alice", "bob", 20, models.OutcomeWin)
		require.NoError(t, err)
		assert.Equal(t, "alice", result.WinnerID)
		assert.Equal(t, "bob", result.LoserID)
		assert.Equal(t, int64(120), ledger.Balance("alice"))
		assert.Equal(t, int64(80), ledger.Balance("bob"))

		var total int64
		for _, delta := range result.Deltas {
			total += delta
		}
		assert.Equal(t, int64(0), total)
	})

	t.Run("loss from p1 perspective pays p2", func(t *testing.T) {
		ledger := newTestLedger(t, 0)
		registerWith(t, ledger, "alice", 100)
		registerWith(t, ledger, "bob", 100)

		result, err := settleDuel(ledger, "alice", "bob", 20, models.OutcomeLoss)
		require.NoError(t, err)
		assert.Equal(t, "bob", result.WinnerID)
		assert.Equal(t, int64(80), ledger.Balance("alice"))
		assert.Equal(t, int64(120), ledger.Balance("bob"))
	})

	t.Run("tie moves nothing", func(t *testing.T) {
		ledger := newTestLedger(t, 0)
		registerWith(t, ledger, "alice", 100)
		registerWith(t, ledger, "bob", 100)

		result, err := settleDuel(ledger, "alice", "bob", 20, models.OutcomeTie)
		require.NoError(t, err)
		assert.Empty(t, result.WinnerID)
		assert.Equal(t, int64(100), result.NewBalances["alice"])
		assert.Equal(t, int64(100), result.NewBalances["bob"])
	})
}
