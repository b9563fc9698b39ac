package ledger

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

const (
	minter    = "minter"
	alice     = "alice"
	bob       = "bob"
	carol     = "carol"
	txWindow  = uint64(time.Hour)
	drift     = uint64(time.Minute)
	startTime = int64(1_700_000_000)
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func ids(values ...uint64) []models.Nat {
	out := make([]models.Nat, len(values))
	for i, v := range values {
		out[i] = models.NewNat(v)
	}
	return out
}

func account(owner string) models.Account {
	return models.Account{Owner: owner}
}

func testConfig() *models.CollectionConfig {
	return &models.CollectionConfig{
		Symbol:           "CKNFT",
		Name:             "ckNFT",
		TxWindow:         txWindow,
		PermittedDrift:   drift,
		MintingAuthority: minter,
		Controllers:      []string{"root"},
		SupplyCap:        uint64Ptr(10),
	}
}

func newTestLedger(t *testing.T) (*Ledger, *store.MemoryStore, *clock) {
	t.Helper()
	s := store.NewMemoryStore()
	c := &clock{t: time.Unix(startTime, 0)}
	l := NewLedger(s, WithClock(c.now))
	require.NoError(t, l.Init(testConfig()))
	return l, s, c
}

func mintTo(t *testing.T, l *Ledger, id uint64, owner string) {
	t.Helper()
	_, err := l.Mint(minter, models.MintArgs{ID: models.NewNat(id), Name: "token", To: account(owner)})
	require.NoError(t, err)
}

func ownerOf(t *testing.T, l *Ledger, id uint64) string {
	t.Helper()
	owner, err := l.OwnerOf(models.NewNat(id))
	require.NoError(t, err)
	return owner.Owner
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) XLock(resourceID string) (string, error) {
	args := m.Called(resourceID)
	return args.String(0), args.Error(1)
}

func (m *mockLocker) Unlock(lockID string) error {
	args := m.Called(lockID)
	return args.Error(0)
}

func TestTurnTakesDistributedLock(t *testing.T) {
	locker := &mockLocker{}
	locker.On("XLock", LockResource).Return("lock-1", nil).Once()
	locker.On("Unlock", "lock-1").Return(nil).Once()

	l := NewLedger(store.NewMemoryStore(), WithLocker(locker))
	called := false
	err := l.Turn("test", func() error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	locker.AssertExpectations(t)
}

func TestTurnBusyLock(t *testing.T) {
	locker := &mockLocker{}
	locker.On("XLock", LockResource).Return("", errors.New("locked"))

	s := store.NewMemoryStore()
	l := NewLedger(s, WithLocker(locker))

	err := l.Turn("test", func() error {
		t.Fatal("turn body must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrLedgerBusy)

	_, err = l.Approve(alice, models.ApprovalArgs{Spender: account(bob), TokenIDs: ids(1)})
	var approvalErr *models.ApprovalError
	require.ErrorAs(t, err, &approvalErr)
	assert.Equal(t, models.ApprovalErrorTemporaryUnavailable, approvalErr.Kind)

	_, err = l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1)})
	var transferErr *models.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, models.TransferErrorGeneric, transferErr.Kind)
	assert.Equal(t, uint64(1), transferErr.ErrorCode)
}

func TestNotInitialized(t *testing.T) {
	l := NewLedger(store.NewMemoryStore())

	_, err := l.Transfer(alice, models.TransferArgs{To: account(bob), TokenIDs: ids(1)})
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.True(t, IsFatal(err))
}

func TestInitKeepsExistingConfig(t *testing.T) {
	l, _, _ := newTestLedger(t)

	other := testConfig()
	other.Name = "other"
	require.NoError(t, l.Init(other))

	cfg, err := l.Config()
	require.NoError(t, err)
	assert.Equal(t, "ckNFT", cfg.Name)
}

func TestUpdateConfig(t *testing.T) {
	l, _, _ := newTestLedger(t)

	next := testConfig()
	next.Name = "renamed"

	err := l.UpdateConfig(alice, next)
	assert.ErrorIs(t, err, ErrUnauthorizedCaller)

	require.NoError(t, l.UpdateConfig("root", next))
	cfg, err := l.Config()
	require.NoError(t, err)
	assert.Equal(t, "renamed", cfg.Name)
}

func TestFatalErrorMessage(t *testing.T) {
	err := fatal(ErrNonExistentToken, "9")
	assert.Equal(t, "invalid id: 9", err.Error())
	assert.ErrorIs(t, err, ErrNonExistentToken)
	assert.Equal(t, "self transfer", fatal(ErrSelfTransfer, "").Error())
	assert.False(t, IsFatal(models.NewTooOldError()))
}

func TestWindow(t *testing.T) {
	cfg := testConfig()

	past, future := window(cfg, 10)
	assert.Equal(t, uint64(0), past)
	assert.Equal(t, 10+drift, future)

	now := uint64(time.Unix(startTime, 0).UnixNano())
	past, future = window(cfg, now)
	assert.Equal(t, now-txWindow-drift, past)
	assert.Equal(t, now+drift, future)
}
