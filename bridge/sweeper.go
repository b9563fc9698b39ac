package bridge

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/models"
)

const ExpirySweeperName = "EXPIRY SWEEPER"

// ExpirySweeper periodically expires mints that were never confirmed.
type ExpirySweeper struct {
	bridge    *Bridge
	processed int
}

func NewExpirySweeper(b *Bridge) *ExpirySweeper {
	return &ExpirySweeper{bridge: b}
}

// NewExpirySweeperWithLastHealth resumes the processed count of a previous run.
func NewExpirySweeperWithLastHealth(b *Bridge, lastHealth models.ServiceHealth) *ExpirySweeper {
	s := NewExpirySweeper(b)
	processed, err := strconv.Atoi(lastHealth.Processed)
	if err != nil {
		log.Debug("[SWEEPER] Ignoring last processed count: ", err)
		return s
	}
	s.processed = processed
	return s
}

func (s *ExpirySweeper) Run() {
	now := s.bridge.ledger.Seconds()
	count, err := s.bridge.ExpireMints(now)
	if err != nil {
		log.Error("[SWEEPER] Error expiring mints: ", err)
	}
	if count > 0 {
		log.Info("[SWEEPER] Expired ", count, " mints")
	}
	s.processed += count
}

func (s *ExpirySweeper) Status() models.RunnerStatus {
	txID, err := s.bridge.ledger.TransactionID()
	if err != nil {
		log.Error("[SWEEPER] Error reading transaction id: ", err)
	}
	return models.RunnerStatus{
		TransactionID: txID.String(),
		Processed:     strconv.Itoa(s.processed),
	}
}
