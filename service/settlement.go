package service

import (
	"fmt"

	"wonbot/models"
)

// CompareDice resolves two dice values from the first roller's perspective
func CompareDice(a, b int) models.Outcome {
	switch {
	case a > b:
		return models.OutcomeWin
	case a < b:
		return models.OutcomeLoss
	default:
		return models.OutcomeTie
	}
}

// CompareRPS resolves two hand shapes from the first player's perspective
func CompareRPS(a, b models.Move) models.Outcome {
	switch {
	case a == b:
		return models.OutcomeTie
	case a.Beats(b):
		return models.OutcomeWin
	default:
		return models.OutcomeLoss
	}
}

// settleSolo applies a solo-vs-house outcome: a win credits 2x the bet, a
// loss debits exactly the bet, a tie changes nothing. The house absorbs the
// asymmetry and is not a tracked account.
func settleSolo(ledger LedgerService, playerID string, bet int64, outcome models.Outcome) (*models.SettlementResult, error) {
	result := &models.SettlementResult{
		Outcome:     outcome,
		Bet:         bet,
		Deltas:      map[string]int64{playerID: 0},
		NewBalances: map[string]int64{},
	}

	var delta int64
	switch outcome {
	case models.OutcomeWin:
		delta = bet * 2
		result.WinnerID = playerID
	case models.OutcomeLoss:
		delta = -bet
		result.LoserID = playerID
	}

	newBalance := ledger.Balance(playerID)
	if delta != 0 {
		var err error
		newBalance, err = ledger.Adjust(playerID, delta)
		if err != nil {
			return nil, fmt.Errorf("failed to settle solo game: %w", err)
		}
	}

	result.Deltas[playerID] = delta
	result.NewBalances[playerID] = newBalance
	return result, nil
}

// settleDuel applies a two-player outcome as a zero-sum transfer: the winner
// gains the bet, the loser loses it, a tie changes nothing. The outcome is
// from p1's perspective.
func settleDuel(ledger LedgerService, p1, p2 string, bet int64, outcome models.Outcome) (*models.SettlementResult, error) {
	result := &models.SettlementResult{
		Outcome:     outcome,
		Bet:         bet,
		Deltas:      map[string]int64{p1: 0, p2: 0},
		NewBalances: map[string]int64{},
	}

	switch outcome {
	case models.OutcomeWin:
		result.WinnerID, result.LoserID = p1, p2
	case models.OutcomeLoss:
		result.WinnerID, result.LoserID = p2, p1
	}

	if outcome != models.OutcomeTie {
		winBalance, err := ledger.Adjust(result.WinnerID, bet)
		if err != nil {
			return nil, fmt.Errorf("failed to credit winner: %w", err)
		}
		loseBalance, err := ledger.Adjust(result.LoserID, -bet)
		if err != nil {
			return nil, fmt.Errorf("failed to debit loser: %w", err)
		}
		result.Deltas[result.WinnerID] = bet
		result.Deltas[result.LoserID] = -bet
		result.NewBalances[result.WinnerID] = winBalance
		result.NewBalances[result.LoserID] = loseBalance
		return result, nil
	}

	result.NewBalances[p1] = ledger.Balance(p1)
	result.NewBalances[p2] = ledger.Balance(p2)
	return result, nil
}
