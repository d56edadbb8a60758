package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wonbot/events"
	"wonbot/models"
)

// newTestSessions returns the concrete service so tests can pin the dice and
// hand draws to deterministic values.
func newTestSessions(t *testing.T, ledger LedgerService, timeout time.Duration) (*sessionService, *Registry) {
	t.Helper()
	registry := NewRegistry()
	svc := NewSessionService(ledger, registry, events.NewBus(), timeout).(*sessionService)
	return svc, registry
}

// fixedDice returns the given rolls in order, then repeats the last one
func fixedDice(rolls ...int) func() int {
	i := 0
	return func() int {
		roll := rolls[i]
		if i < len(rolls)-1 {
			i++
		}
		return roll
	}
}

func TestStartSingle_InsufficientFundsLeavesNoSession(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 5)
	svc, registry := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	assert.True(t, errors.Is(err, models.ErrInsufficientFunds))
	assert.Nil(t, sess)
	assert.False(t, registry.Contains("alice"))
	assert.Equal(t, int64(5), ledger.Balance("alice"))
}

func TestStartSingle_UnregisteredRefused(t *testing.T) {
	ledger := newTestLedger(t, 0)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	_, err := svc.StartSingle(models.GameDice, "ghost", 10)
	assert.True(t, errors.Is(err, models.ErrNotRegistered))
}

func TestStartSingle_SecondSessionConflicts(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	_, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	_, err = svc.StartSingle(models.GameRPS, "alice", 10)
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
}

func TestSingleDice_WinPaysDoubleTheBet(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, registry := newTestSessions(t, ledger, time.Minute)
	svc.dice = fixedDice(6, 2)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	result, err := svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	assert.True(t, result.Resolved)
	assert.Equal(t, 6, result.Roll)
	assert.Equal(t, 2, result.HouseRoll)
	assert.Equal(t, models.OutcomeWin, result.Settlement.Outcome)
	assert.Equal(t, int64(120), ledger.Balance("alice"))
	assert.False(t, registry.Contains("alice"))
	assert.Nil(t, svc.Get(sess.ID))
}

func TestSingleDice_LossDebitsTheBet(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)
	svc.dice = fixedDice(1, 4)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	result, err := svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoss, result.Settlement.Outcome)
	assert.Equal(t, int64(90), ledger.Balance("alice"))
}

func TestSingleDice_TieChangesNothing(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)
	svc.dice = fixedDice(3, 3)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	result, err := svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeTie, result.Settlement.Outcome)
	assert.Equal(t, int64(100), ledger.Balance("alice"))
}

func TestSingleRPS_HouseHandComesFromTheService(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)
	svc.rpsPick = func() models.Move { return models.MoveScissors }

	sess, err := svc.StartSingle(models.GameRPS, "alice", 25)
	require.NoError(t, err)

	result, err := svc.SubmitMove(sess.ID, "alice", models.MoveRock)
	require.NoError(t, err)
	assert.Equal(t, models.MoveScissors, result.HouseMove)
	assert.Equal(t, models.OutcomeWin, result.Settlement.Outcome)
	assert.Equal(t, int64(150), ledger.Balance("alice"))
}

func TestSingle_OnlyTheStartingPlayerMayPlay(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "bob", models.MoveRoll)
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
	assert.NotNil(t, svc.Get(sess.ID))
}

func TestSubmitMove_RejectsMovesFromTheWrongGame(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveRock)
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
}

func TestMultiDice_OpenGameSettlesZeroSum(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, registry := newTestSessions(t, ledger, time.Minute)
	svc.dice = fixedDice(5, 3)

	sess, err := svc.StartMulti(models.GameDice, "alice", 20, "")
	require.NoError(t, err)

	first, err := svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	assert.False(t, first.Resolved)
	assert.Equal(t, 5, first.Roll)

	second, err := svc.SubmitMove(sess.ID, "bob", models.MoveRoll)
	require.NoError(t, err)
	assert.True(t, second.Resolved)
	assert.Equal(t, 5, second.Rolls["alice"])
	assert.Equal(t, 3, second.Rolls["bob"])
	assert.Equal(t, "alice", second.Settlement.WinnerID)
	assert.Equal(t, int64(120), ledger.Balance("alice"))
	assert.Equal(t, int64(80), ledger.Balance("bob"))
	assert.False(t, registry.Contains("alice"))
	assert.False(t, registry.Contains("bob"))
}

func TestMultiDice_TieMovesNothing(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)
	svc.dice = fixedDice(4, 4)

	sess, err := svc.StartMulti(models.GameDice, "alice", 20, "bob")
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	result, err := svc.SubmitMove(sess.ID, "bob", models.MoveRoll)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeTie, result.Settlement.Outcome)
	assert.Equal(t, int64(100), ledger.Balance("alice"))
	assert.Equal(t, int64(100), ledger.Balance("bob"))
}

func TestMultiDice_DoubleRollRejected(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartMulti(models.GameDice, "alice", 20, "")
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
}

func TestMultiDice_NamedOpponentLocksOutOthers(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	registerWith(t, ledger, "carol", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartMulti(models.GameDice, "alice", 20, "bob")
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "carol", models.MoveRoll)
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
}

func TestMultiRPS_FullFlow(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, registry := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartMulti(models.GameRPS, "alice", 30, "")
	require.NoError(t, err)

	first, err := svc.SubmitMove(sess.ID, "alice", models.MovePaper)
	require.NoError(t, err)
	assert.False(t, first.Resolved)

	second, err := svc.SubmitMove(sess.ID, "bob", models.MoveRock)
	require.NoError(t, err)
	assert.True(t, second.Resolved)
	assert.Equal(t, models.MovePaper, second.Choices["alice"])
	assert.Equal(t, models.MoveRock, second.Choices["bob"])
	assert.Equal(t, "alice", second.Settlement.WinnerID)
	assert.Equal(t, int64(130), ledger.Balance("alice"))
	assert.Equal(t, int64(70), ledger.Balance("bob"))
	assert.False(t, registry.Contains("alice"))
	assert.False(t, registry.Contains("bob"))
}

func TestMultiRPS_SecondPlayerMustWaitForTheFirst(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartMulti(models.GameRPS, "alice", 30, "")
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "bob", models.MoveRock)
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
	assert.NotNil(t, svc.Get(sess.ID))
}

func TestMultiRPS_BrokeInitiatorAbortsBeforeBindingTheJoiner(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, registry := newTestSessions(t, ledger, time.Minute)

	sess, err := svc.StartMulti(models.GameRPS, "alice", 30, "")
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveScissors)
	require.NoError(t, err)

	// Alice loses her stake elsewhere before anyone joins
	_, err = ledger.SetBalance("alice", 0)
	require.NoError(t, err)

	_, err = svc.SubmitMove(sess.ID, "bob", models.MoveRock)
	assert.True(t, errors.Is(err, models.ErrInsufficientFunds))
	assert.Nil(t, svc.Get(sess.ID))
	assert.False(t, registry.Contains("alice"))
	assert.False(t, registry.Contains("bob"))
	assert.Equal(t, int64(100), ledger.Balance("bob"))
}

func TestSession_TimeoutExpiresWithZeroSettlement(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, registry := newTestSessions(t, ledger, 20*time.Millisecond)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return svc.Get(sess.ID) == nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, models.StatusExpired, sess.Status())
	assert.False(t, registry.Contains("alice"))
	assert.Equal(t, int64(100), ledger.Balance("alice"))

	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	assert.True(t, errors.Is(err, models.ErrSessionExpired))
}

func TestMultiDice_TimeoutReleasesBothParticipants(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	registerWith(t, ledger, "bob", 100)
	svc, registry := newTestSessions(t, ledger, 20*time.Millisecond)

	sess, err := svc.StartMulti(models.GameDice, "alice", 20, "bob")
	require.NoError(t, err)

	// A lone first roll must settle nothing when the opponent never shows
	_, err = svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return svc.Get(sess.ID) == nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, models.StatusExpired, sess.Status())
	assert.Equal(t, int64(100), ledger.Balance("alice"))
	assert.Equal(t, int64(100), ledger.Balance("bob"))
	assert.False(t, registry.Contains("alice"))
	assert.False(t, registry.Contains("bob"))

	_, err = svc.SubmitMove(sess.ID, "bob", models.MoveRoll)
	assert.True(t, errors.Is(err, models.ErrSessionExpired))
}

func TestSession_MoveBeatsTheTimer(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Hour)
	svc.dice = fixedDice(6, 1)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	result, err := svc.SubmitMove(sess.ID, "alice", models.MoveRoll)
	require.NoError(t, err)
	require.True(t, result.Resolved)

	// A late timer fire against a resolved session must not touch anything
	svc.expire(sess)
	assert.Equal(t, models.StatusResolved, sess.Status())
	assert.Equal(t, int64(120), ledger.Balance("alice"))
}

func TestSession_ImmediateTimeoutStillCleansUp(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, registry := newTestSessions(t, ledger, time.Nanosecond)

	sess, err := svc.StartSingle(models.GameDice, "alice", 10)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return svc.Get(sess.ID) == nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, models.StatusExpired, sess.Status())
	assert.False(t, registry.Contains("alice"))
	assert.Equal(t, int64(100), ledger.Balance("alice"))
}

func TestStartMulti_SelfOpponentRefused(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, _ := newTestSessions(t, ledger, time.Minute)

	_, err := svc.StartMulti(models.GameDice, "alice", 10, "alice")
	assert.True(t, errors.Is(err, models.ErrSessionConflict))
}

func TestStartMulti_UnregisteredOpponentRefused(t *testing.T) {
	ledger := newTestLedger(t, 0)
	registerWith(t, ledger, "alice", 100)
	svc, registry := newTestSessions(t, ledger, time.Minute)

	_, err := svc.StartMulti(models.GameDice, "alice", 10, "ghost")
	assert.True(t, errors.Is(err, models.ErrNotRegistered))
	assert.False(t, registry.Contains("alice"))
}
