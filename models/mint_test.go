package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMintStateTransitions(t *testing.T) {
	allowed := map[MintState][]MintState{
		MintStateInit:         {MintStateFundReceived, MintStateSigned, MintStateExpired},
		MintStateFundReceived: {MintStateSigned, MintStateExpired},
		MintStateSigned:       {MintStateConfirmed, MintStateExpired},
		MintStateConfirmed:    {},
		MintStateExpired:      {},
	}
	all := []MintState{MintStateInit, MintStateFundReceived, MintStateSigned, MintStateConfirmed, MintStateExpired}

	for from, targets := range allowed {
		for _, to := range all {
			assert.Equal(t, contains(targets, to), from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func contains(states []MintState, s MintState) bool {
	for _, x := range states {
		if x == s {
			return true
		}
	}
	return false
}

func TestMintStatusExpiredAt(t *testing.T) {
	status := MintStatus{Expiry: 100}
	assert.False(t, status.ExpiredAt(100))
	assert.True(t, status.ExpiredAt(101))
}

func TestTransferErrorJSON(t *testing.T) {
	b, err := NewDuplicateError(4).MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"Duplicate":{"duplicate_of":4}}`, string(b))

	b, err = NewUnauthorizedTransferError([]Nat{NewNat(2)}).MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"Unauthorized":{"tokens_ids":["2"]}}`, string(b))

	b, err = NewTooOldError().MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"TooOld":null}`, string(b))

	b, err = NewTemporaryUnavailableError().MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"TemporaryUnavailable":null}`, string(b))
}
