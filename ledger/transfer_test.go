package ledger

import (
	"testing"
	"time"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferValidation(t *testing.T) {
	l, _, _ := newTestLedger(t)
	mintTo(t, l, 1, alice)

	t.Run("No Tokens", func(t *testing.T) {
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob)})
		assert.ErrorIs(t, err, ErrNoTokens)
	})

	t.Run("Duplicate Ids", func(t *testing.T) {
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 1)})
		assert.ErrorIs(t, err, ErrDuplicateTokenID)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 42)})
		assert.ErrorIs(t, err, ErrNonExistentToken)
		assert.Equal(t, alice, ownerOf(t, l, 1))
	})

	t.Run("Batch Too Large", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxUpdateBatchSize = uint64Ptr(1)
		require.NoError(t, l.UpdateConfig("root", cfg))
		defer func() { require.NoError(t, l.UpdateConfig("root", testConfig())) }()

		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 2)})
		assert.ErrorIs(t, err, ErrBatchTooLarge)
	})

	t.Run("Memo Too Large", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxMemoSize = uint64Ptr(2)
		require.NoError(t, l.UpdateConfig("root", cfg))
		defer func() { require.NoError(t, l.UpdateConfig("root", testConfig())) }()

		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1), Memo: []byte("abc")})
		assert.ErrorIs(t, err, ErrMemoTooLarge)
	})

	t.Run("Self Transfer", func(t *testing.T) {
		_, err := l.Transfer(alice, models.TransferArgs{To: account(alice), TokenIDs: ids(1)})
		assert.ErrorIs(t, err, ErrSelfTransfer)
		assert.True(t, IsFatal(err))
	})
}

func TestTransferClearsApprovals(t *testing.T) {
	l, s, _ := newTestLedger(t)
	mintTo(t, l, 1, alice)

	_, err := l.Approve(alice, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(1)})
	require.NoError(t, err)

	before, err := l.TransactionID()
	require.NoError(t, err)

	txID, err := l.Transfer(carol, models.TransferArgs{To: account(bob), TokenIDs: ids(1)})
	require.NoError(t, err)

	expected, err := before.AddUint64(1)
	require.NoError(t, err)
	assert.Equal(t, expected, txID)

	token, err := l.Token(models.NewNat(1))
	require.NoError(t, err)
	assert.Equal(t, bob, token.Owner.Owner)
	assert.Empty(t, token.Approvals)

	length, err := s.TransferLogLength()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), length)

	entry, err := l.TransferLog(0)
	require.NoError(t, err)
	assert.Equal(t, carol, entry.From.Owner)
	assert.Equal(t, bob, entry.To.Owner)
}

func TestTransferApprovalExpiry(t *testing.T) {
	l, _, c := newTestLedger(t)
	mintTo(t, l, 1, alice)

	expires := uint64(c.now().UnixNano()) + uint64(time.Hour)
	_, err := l.Approve(alice, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(1), ExpiresAt: &expires})
	require.NoError(t, err)

	c.advance(2 * time.Hour)
	_, err = l.Transfer(carol, models.TransferArgs{To: account(bob), TokenIDs: ids(1)})
	var transferErr *models.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, models.TransferErrorUnauthorized, transferErr.Kind)
	assert.Equal(t, alice, ownerOf(t, l, 1))
}

func TestTransferZeroSubaccountIsDefault(t *testing.T) {
	l, _, _ := newTestLedger(t)
	mintTo(t, l, 1, alice)

	var zero models.Subaccount
	_, err := l.Transfer(alice, models.TransferArgs{SpenderSubaccount: &zero, To: account(bob), TokenIDs: ids(1)})
	require.NoError(t, err)
	assert.Equal(t, bob, ownerOf(t, l, 1))
}

func TestTransferCreatedAtTime(t *testing.T) {
	l, _, c := newTestLedger(t)
	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, alice)
	now := uint64(c.now().UnixNano())

	t.Run("Too Old", func(t *testing.T) {
		created := now - txWindow - drift - 1
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1), CreatedAtTime: &created})
		var transferErr *models.TransferError
		require.ErrorAs(t, err, &transferErr)
		assert.Equal(t, models.TransferErrorTooOld, transferErr.Kind)
	})

	t.Run("Created In Future", func(t *testing.T) {
		created := now + drift + 1
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1), CreatedAtTime: &created})
		var transferErr *models.TransferError
		require.ErrorAs(t, err, &transferErr)
		assert.Equal(t, models.TransferErrorCreatedInFuture, transferErr.Kind)
		assert.Equal(t, now, transferErr.LedgerTime)
	})

	t.Run("Log Uses Created At Time", func(t *testing.T) {
		created := now - 5
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(2), CreatedAtTime: &created})
		require.NoError(t, err)

		entry, err := l.TransferLog(0)
		require.NoError(t, err)
		assert.Equal(t, created, entry.At)
	})
}

func TestTransferDuplicate(t *testing.T) {
	l, _, c := newTestLedger(t)
	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, bob)

	created := uint64(c.now().UnixNano())
	args := models.TransferArgs{To: account(bob), TokenIDs: ids(1), Memo: []byte("m"), CreatedAtTime: &created}

	_, err := l.Transfer(alice, args)
	require.NoError(t, err)

	// bob hands the token back so a replayed transfer would be authorized
	_, err = l.Transfer(bob, models.TransferArgs{To: account(alice), TokenIDs: ids(1)})
	require.NoError(t, err)

	before, err := l.TransactionID()
	require.NoError(t, err)

	_, err = l.Transfer(alice, args)
	var transferErr *models.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, models.TransferErrorDuplicate, transferErr.Kind)
	assert.Equal(t, uint64(0), transferErr.DuplicateOf)
	assert.Equal(t, alice, ownerOf(t, l, 1))

	after, err := l.TransactionID()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	t.Run("Different Memo Is Fresh", func(t *testing.T) {
		fresh := args
		fresh.Memo = []byte("other")
		_, err := l.Transfer(alice, fresh)
		require.NoError(t, err)
		assert.Equal(t, bob, ownerOf(t, l, 1))

		_, err = l.Transfer(bob, models.TransferArgs{To: account(alice), TokenIDs: ids(1)})
		require.NoError(t, err)
	})

	t.Run("Outside Window Is Fresh", func(t *testing.T) {
		c.advance(time.Duration(txWindow + drift))
		stale := args
		edge := uint64(c.now().UnixNano()) - txWindow - drift
		stale.CreatedAtTime = &edge
		// the original entry is at created, which now equals the past bound
		require.Equal(t, created, edge)

		_, err := l.Transfer(alice, stale)
		require.NoError(t, err)
		assert.Equal(t, bob, ownerOf(t, l, 1))
	})
}

func TestTransferAtomic(t *testing.T) {
	l, s, _ := newTestLedger(t)
	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, alice)
	mintTo(t, l, 3, carol)

	before, err := l.TransactionID()
	require.NoError(t, err)

	_, err = l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 2, 3)})
	var transferErr *models.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, models.TransferErrorUnauthorized, transferErr.Kind)
	assert.Equal(t, ids(3), transferErr.TokenIDs)

	assert.Equal(t, alice, ownerOf(t, l, 1))
	assert.Equal(t, alice, ownerOf(t, l, 2))
	assert.Equal(t, carol, ownerOf(t, l, 3))

	length, err := s.TransferLogLength()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), length)

	after, err := l.TransactionID()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	t.Run("Self Transfer Anywhere Has No Effect", func(t *testing.T) {
		mintTo(t, l, 4, bob)
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 4)})
		// token 4 is not alice's so the unauthorized result wins over the self transfer
		require.ErrorAs(t, err, &transferErr)

		_, err = l.Approve(bob, models.ApprovalArgs{Spender: account(alice), TokenIDs: ids(4)})
		require.NoError(t, err)

		_, err = l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 4)})
		assert.ErrorIs(t, err, ErrSelfTransfer)
		assert.Equal(t, alice, ownerOf(t, l, 1))
	})

	t.Run("All Authorized", func(t *testing.T) {
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 2)})
		require.NoError(t, err)
		assert.Equal(t, bob, ownerOf(t, l, 1))
		assert.Equal(t, bob, ownerOf(t, l, 2))
	})
}

func TestTransferNonAtomic(t *testing.T) {
	l, s, _ := newTestLedger(t)
	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, carol)
	mintTo(t, l, 3, alice)

	before, err := l.TransactionID()
	require.NoError(t, err)

	_, err = l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 2, 3), IsAtomic: boolPtr(false)})
	var transferErr *models.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, models.TransferErrorUnauthorized, transferErr.Kind)
	assert.Equal(t, ids(2), transferErr.TokenIDs)

	assert.Equal(t, bob, ownerOf(t, l, 1))
	assert.Equal(t, carol, ownerOf(t, l, 2))
	assert.Equal(t, bob, ownerOf(t, l, 3))

	length, err := s.TransferLogLength()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), length)

	after, err := l.TransactionID()
	require.NoError(t, err)
	expected, _ := before.AddUint64(1)
	assert.Equal(t, expected, after)

	t.Run("Nothing Committed Keeps Transaction Id", func(t *testing.T) {
		before, err := l.TransactionID()
		require.NoError(t, err)

		_, err = l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(2), IsAtomic: boolPtr(false)})
		var transferErr *models.TransferError
		require.ErrorAs(t, err, &transferErr)
		assert.Equal(t, models.TransferErrorUnauthorized, transferErr.Kind)

		after, err := l.TransactionID()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Self Transfer Aborts Whole Batch", func(t *testing.T) {
		mintTo(t, l, 5, alice)
		mintTo(t, l, 6, bob)
		_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(5, 6), IsAtomic: boolPtr(false)})
		assert.ErrorIs(t, err, ErrSelfTransfer)
		assert.Equal(t, alice, ownerOf(t, l, 5))
	})

	t.Run("Success Increments Transaction Id", func(t *testing.T) {
		mintTo(t, l, 7, alice)
		before, err := l.TransactionID()
		require.NoError(t, err)

		txID, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(7), IsAtomic: boolPtr(false)})
		require.NoError(t, err)
		expected, _ := before.AddUint64(1)
		assert.Equal(t, expected, txID)
	})
}

func TestTransferNonAtomicDuplicateStopsWalk(t *testing.T) {
	l, _, c := newTestLedger(t)
	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, alice)
	mintTo(t, l, 3, alice)

	created := uint64(c.now().UnixNano())
	_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(2), CreatedAtTime: &created})
	require.NoError(t, err)
	_, err = l.Transfer(bob, models.TransferArgs{To: account(alice), TokenIDs: ids(2)})
	require.NoError(t, err)

	before, err := l.TransactionID()
	require.NoError(t, err)

	_, err = l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1, 2, 3), CreatedAtTime: &created, IsAtomic: boolPtr(false)})
	var transferErr *models.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, models.TransferErrorDuplicate, transferErr.Kind)
	assert.Equal(t, uint64(0), transferErr.DuplicateOf)

	assert.Equal(t, bob, ownerOf(t, l, 1))
	assert.Equal(t, alice, ownerOf(t, l, 2))
	assert.Equal(t, alice, ownerOf(t, l, 3))

	after, err := l.TransactionID()
	require.NoError(t, err)
	expected, _ := before.AddUint64(1)
	assert.Equal(t, expected, after)
}
