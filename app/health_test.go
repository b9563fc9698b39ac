package app

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dan13ram/cknft-bridge/app/mocks"
	"github.com/dan13ram/cknft-bridge/models"
)

func init() {
	log.SetOutput(io.Discard)
}

type stubLedger struct {
	txID   models.Nat
	supply models.Nat
	err    error
}

func (s stubLedger) TransactionID() (models.Nat, error) {
	return s.txID, s.err
}

func (s stubLedger) TotalSupply() (models.Nat, error) {
	return s.supply, s.err
}

func NewTestHealthCheck(db Database) *HealthCheckRunner {
	return &HealthCheckRunner{
		principal:     "bridge-service",
		hostname:      "hostname",
		signerAddress: "0xabc",
		ledger:        stubLedger{txID: models.NewNat(7), supply: models.NewNat(3)},
		db:            db,
	}
}

type MockService struct{}

func (e *MockService) Start() {}

func (e *MockService) Stop() {}

const MockServiceName = "mock"

func (e *MockService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         MockServiceName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
		Healthy:      true,
	}
}

func TestHealthStatus(t *testing.T) {
	x := NewTestHealthCheck(nil)

	assert.Equal(t, "", x.Status().TransactionID)
	x.Run()
	assert.Equal(t, "7", x.Status().TransactionID)
}

func TestFindLastHealth(t *testing.T) {
	filter := bson.M{
		"principal": "bridge-service",
		"hostname":  "hostname",
	}

	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		x := NewTestHealthCheck(mockDB)

		mockDB.On("FindOne", models.CollectionHealthChecks, filter, mock.Anything).Return(nil)

		_, err := x.FindLastHealth()
		assert.Nil(t, err)
	})

	t.Run("With Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		x := NewTestHealthCheck(mockDB)

		mockDB.On("FindOne", models.CollectionHealthChecks, filter, mock.Anything).Return(errors.New("error"))

		_, err := x.FindLastHealth()
		assert.EqualError(t, err, "error")
	})

	t.Run("No Database", func(t *testing.T) {
		x := NewTestHealthCheck(nil)
		_, err := x.FindLastHealth()
		assert.ErrorIs(t, err, ErrNoDocuments)
	})
}

func TestServiceHealths(t *testing.T) {
	x := NewTestHealthCheck(nil)
	wg := &sync.WaitGroup{}
	x.SetServices([]Service{
		NewEmptyService(wg),
		nil,
		&MockService{},
	})

	healths := x.ServiceHealths()

	assert.Len(t, healths, 1)
	assert.Equal(t, MockServiceName, healths[0].Name)
}

func TestPostHealth(t *testing.T) {
	t.Run("Memory Only", func(t *testing.T) {
		x := NewTestHealthCheck(nil)
		x.SetServices([]Service{&MockService{}})

		assert.True(t, x.PostHealth())

		health := x.LastHealth()
		assert.Equal(t, "bridge-service", health.Principal)
		assert.Equal(t, "0xabc", health.SignerAddress)
		assert.Equal(t, "7", health.TransactionID)
		assert.Equal(t, "3", health.TotalSupply)
		assert.Len(t, health.ServiceHealths, 1)
		assert.False(t, health.CreatedAt.IsZero())

		created := health.CreatedAt
		assert.True(t, x.PostHealth())
		assert.Equal(t, created, x.LastHealth().CreatedAt)
	})

	t.Run("Persisted", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		x := NewTestHealthCheck(mockDB)

		mockDB.On("UpsertOne", models.CollectionHealthChecks, x.filter(), mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			return ok && set["transaction_id"] == "7" && set["total_supply"] == "3"
		})).Return(nil)

		assert.True(t, x.PostHealth())
	})

	t.Run("Database Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		x := NewTestHealthCheck(mockDB)

		mockDB.On("UpsertOne", models.CollectionHealthChecks, mock.Anything, mock.Anything).Return(errors.New("error"))

		assert.False(t, x.PostHealth())
		assert.Equal(t, "7", x.LastHealth().TransactionID)
	})

	t.Run("Ledger Error", func(t *testing.T) {
		x := NewTestHealthCheck(nil)
		x.ledger = stubLedger{err: errors.New("not initialized")}

		assert.True(t, x.PostHealth())
		assert.Equal(t, "0", x.LastHealth().TransactionID)
	})
}

func TestHealthCheckAsRunnerService(t *testing.T) {
	x := NewTestHealthCheck(nil)
	wg := &sync.WaitGroup{}
	service := NewRunnerService(HealthServiceName, x, wg, 50*time.Millisecond)
	wg.Add(1)
	go service.Start()
	time.Sleep(120 * time.Millisecond)
	service.Stop()
	wg.Wait()

	assert.Equal(t, "7", service.Health().TransactionID)
	assert.Equal(t, "7", x.LastHealth().TransactionID)
}
