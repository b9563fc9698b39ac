package ledger

import (
	"testing"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	l, _, _ := newTestLedger(t)
	sub := models.Subaccount{1}
	mintTo(t, l, 3, alice)
	mintTo(t, l, 1, alice)
	_, err := l.Mint(minter, models.MintArgs{ID: models.NewNat(2), Name: "sub", To: models.Account{Owner: alice, Subaccount: &sub}})
	require.NoError(t, err)

	t.Run("Tokens Of", func(t *testing.T) {
		tokens, err := l.TokensOf(account(alice))
		require.NoError(t, err)
		assert.Equal(t, ids(1, 3), tokens)

		tokens, err = l.TokensOf(models.Account{Owner: alice, Subaccount: &sub})
		require.NoError(t, err)
		assert.Equal(t, ids(2), tokens)

		tokens, err = l.TokensOf(account(carol))
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("Balance Of", func(t *testing.T) {
		balance, err := l.BalanceOf(account(alice))
		require.NoError(t, err)
		assert.Equal(t, models.NewNat(2), balance)
	})

	t.Run("Owner Of Unknown", func(t *testing.T) {
		_, err := l.OwnerOf(models.NewNat(99))
		assert.ErrorIs(t, err, ErrNonExistentToken)
	})

	t.Run("Collection Metadata", func(t *testing.T) {
		metadata, err := l.CollectionMetadata()
		require.NoError(t, err)
		assert.Equal(t, "CKNFT", metadata.Symbol)
		assert.Equal(t, models.NewNat(3), metadata.TotalSupply)
		assert.Equal(t, txWindow, metadata.TxWindow)
		assert.Nil(t, metadata.Royalties)
		assert.Nil(t, metadata.RoyaltyRecipient)
	})

	t.Run("Supported Standards", func(t *testing.T) {
		standards := l.SupportedStandards()
		require.Len(t, standards, 1)
		assert.Equal(t, "ICRC-7", standards[0].Name)
	})

	t.Run("Transfer Log Missing", func(t *testing.T) {
		_, err := l.TransferLog(0)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Partition Details", func(t *testing.T) {
		details, err := l.PartitionDetails()
		require.NoError(t, err)
		assert.Equal(t, uint64(3), details[1].Entries)
	})
}
