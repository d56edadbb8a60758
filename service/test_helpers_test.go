package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wonbot/events"
	"wonbot/storage"
)

// newTestLedger builds a ledger over throwaway snapshot files
func newTestLedger(t *testing.T, startingBalance int64) LedgerService {
	t.Helper()
	dir := t.TempDir()

	snapshot, err := storage.NewSnapshot(filepath.Join(dir, "points.json"))
	require.NoError(t, err)
	actionLog, err := storage.OpenActionLog(filepath.Join(dir, "point_log.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { actionLog.Close() })

	ledger, err := NewLedgerService(snapshot, actionLog, events.NewBus(), startingBalance)
	require.NoError(t, err)
	return ledger
}

// registerWith registers a user and sets an exact balance
func registerWith(t *testing.T, ledger LedgerService, userID string, balance int64) {
	t.Helper()
	_, err := ledger.Register(userID)
	require.NoError(t, err)
	_, err = ledger.SetBalance(userID, balance)
	require.NoError(t, err)
}
