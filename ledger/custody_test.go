package ledger

import (
	"errors"
	"testing"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustodyTransfer(t *testing.T) {
	custodian := account("bridge")

	t.Run("Moves Token After Prepare", func(t *testing.T) {
		l, s, _ := newTestLedger(t)
		mintTo(t, l, 1, alice)

		prepared := false
		_, err := l.CustodyTransfer(alice, nil, models.NewNat(1), custodian, func() error {
			prepared = true
			assert.Equal(t, alice, ownerOf(t, l, 1))
			return nil
		})
		require.NoError(t, err)
		assert.True(t, prepared)
		assert.Equal(t, "bridge", ownerOf(t, l, 1))

		length, err := s.TransferLogLength()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), length)
	})

	t.Run("Not Owner Skips Prepare", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		mintTo(t, l, 1, bob)

		_, err := l.CustodyTransfer(alice, nil, models.NewNat(1), custodian, func() error {
			t.Fatal("prepare must not run")
			return nil
		})
		var transferErr *models.TransferError
		require.ErrorAs(t, err, &transferErr)
		assert.Equal(t, models.TransferErrorUnauthorized, transferErr.Kind)
		assert.Equal(t, bob, ownerOf(t, l, 1))
	})

	t.Run("Unknown Token", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		_, err := l.CustodyTransfer(alice, nil, models.NewNat(1), custodian, nil)
		assert.ErrorIs(t, err, ErrNonExistentToken)
	})

	t.Run("Prepare Failure Aborts", func(t *testing.T) {
		l, s, _ := newTestLedger(t)
		mintTo(t, l, 1, alice)

		boom := errors.New("boom")
		_, err := l.CustodyTransfer(alice, nil, models.NewNat(1), custodian, func() error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, alice, ownerOf(t, l, 1))

		length, err := s.TransferLogLength()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), length)
	})
}
