package ledger

import (
	"testing"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprove(t *testing.T) {
	l, _, c := newTestLedger(t)
	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, alice)
	mintTo(t, l, 3, bob)

	t.Run("Defaults To Callers Tokens", func(t *testing.T) {
		_, err := l.Approve(alice, models.ApprovalArgs{Spender: account(carol)})
		require.NoError(t, err)

		for _, id := range []uint64{1, 2} {
			token, err := l.Token(models.NewNat(id))
			require.NoError(t, err)
			require.Len(t, token.Approvals, 1)
			assert.Equal(t, carol, token.Approvals[0].Account.Owner)
		}
		token, err := l.Token(models.NewNat(3))
		require.NoError(t, err)
		assert.Empty(t, token.Approvals)
	})

	t.Run("No Tokens", func(t *testing.T) {
		_, err := l.Approve(carol, models.ApprovalArgs{Spender: account(bob)})
		assert.ErrorIs(t, err, ErrNoTokens)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		_, err := l.Approve(alice, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(9)})
		assert.ErrorIs(t, err, ErrNonExistentToken)
	})

	t.Run("Self Approve", func(t *testing.T) {
		_, err := l.Approve(alice, models.ApprovalArgs{Spender: account(alice), TokenIDs: ids(1)})
		assert.ErrorIs(t, err, ErrSelfApprove)
	})

	t.Run("Unauthorized Has No Partial Effect", func(t *testing.T) {
		before, err := l.Token(models.NewNat(1))
		require.NoError(t, err)

		_, err = l.Approve(alice, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(1, 3)})
		var approvalErr *models.ApprovalError
		require.ErrorAs(t, err, &approvalErr)
		assert.Equal(t, models.ApprovalErrorUnauthorized, approvalErr.Kind)
		assert.Equal(t, ids(3), approvalErr.TokenIDs)

		after, err := l.Token(models.NewNat(1))
		require.NoError(t, err)
		assert.Equal(t, len(before.Approvals), len(after.Approvals))
	})

	t.Run("Created At Time", func(t *testing.T) {
		now := uint64(c.now().UnixNano())

		old := now - txWindow - drift - 1
		_, err := l.Approve(alice, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(1), CreatedAtTime: &old})
		var approvalErr *models.ApprovalError
		require.ErrorAs(t, err, &approvalErr)
		assert.Equal(t, models.ApprovalErrorTooOld, approvalErr.Kind)

		future := now + drift + 1
		_, err = l.Approve(alice, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(1), CreatedAtTime: &future})
		require.ErrorAs(t, err, &approvalErr)
		assert.Equal(t, models.ApprovalErrorGeneric, approvalErr.Kind)
		assert.Equal(t, uint64(1), approvalErr.ErrorCode)
	})

	t.Run("Increments Transaction Id", func(t *testing.T) {
		before, err := l.TransactionID()
		require.NoError(t, err)

		txID, err := l.Approve(bob, models.ApprovalArgs{Spender: account(carol), TokenIDs: ids(3)})
		require.NoError(t, err)
		expected, _ := before.AddUint64(1)
		assert.Equal(t, expected, txID)
	})
}
