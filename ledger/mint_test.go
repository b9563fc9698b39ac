package ledger

import (
	"testing"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	l, _, _ := newTestLedger(t)

	t.Run("Unauthorized Minter", func(t *testing.T) {
		_, err := l.Mint(alice, models.MintArgs{ID: models.NewNat(1), Name: "x", To: account(alice)})
		assert.ErrorIs(t, err, ErrUnauthorizedMinter)

		supply, err := l.TotalSupply()
		require.NoError(t, err)
		assert.True(t, supply.IsZero())
	})

	t.Run("Increments Supply", func(t *testing.T) {
		description := "first"
		txID, err := l.Mint(minter, models.MintArgs{ID: models.NewNat(1), Name: "one", Description: &description, Image: []byte{1}, To: account(alice)})
		require.NoError(t, err)
		assert.Equal(t, models.NewNat(1), txID)

		supply, err := l.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, models.NewNat(1), supply)

		token, err := l.Token(models.NewNat(1))
		require.NoError(t, err)
		assert.Equal(t, alice, token.Owner.Owner)
		assert.Empty(t, token.Approvals)

		metadata, err := l.TokenMetadata(models.NewNat(1))
		require.NoError(t, err)
		require.Len(t, metadata, 4)
		assert.Equal(t, "Id", metadata[0].Key)
		assert.Equal(t, "Description", metadata[3].Key)
	})

	t.Run("Reused Id", func(t *testing.T) {
		_, err := l.Mint(minter, models.MintArgs{ID: models.NewNat(1), Name: "again", To: account(bob)})
		assert.ErrorIs(t, err, ErrTokenExists)

		supply, err := l.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, models.NewNat(1), supply)
		assert.Equal(t, alice, ownerOf(t, l, 1))
	})
}

func TestMintSupplyCap(t *testing.T) {
	l, _, _ := newTestLedger(t)
	cfg := testConfig()
	cfg.SupplyCap = uint64Ptr(2)
	require.NoError(t, l.UpdateConfig("root", cfg))

	mintTo(t, l, 1, alice)
	mintTo(t, l, 2, alice)

	_, err := l.Mint(minter, models.MintArgs{ID: models.NewNat(3), Name: "three", To: account(alice)})
	assert.ErrorIs(t, err, ErrSupplyCapReached)

	supply, err := l.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, models.NewNat(2), supply)

	capacity, err := l.SupplyCap()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), *capacity)
}
