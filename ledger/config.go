package ledger

import (
	"errors"
	"fmt"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
	log "github.com/sirupsen/logrus"
)

// Init stores cfg unless a configuration was persisted by an earlier run.
func (l *Ledger) Init(cfg *models.CollectionConfig) error {
	return l.Turn("init", func() error {
		_, err := l.store.GetConfig()
		if err == nil {
			log.Debug("[LEDGER] Config already initialized")
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("error reading config: %w", err)
		}
		if err := l.store.PutConfig(cfg); err != nil {
			return fmt.Errorf("error storing config: %w", err)
		}
		log.Info("[LEDGER] Initialized collection ", cfg.Name)
		return nil
	})
}

// UpdateConfig replaces the collection configuration. The caller must be a
// controller of the current configuration.
func (l *Ledger) UpdateConfig(caller string, cfg *models.CollectionConfig) error {
	err := l.Turn("update_config", func() error {
		current, err := l.config()
		if err != nil {
			return err
		}
		if !current.IsController(caller) {
			return fatal(ErrUnauthorizedCaller, caller)
		}
		if err := l.store.PutConfig(cfg); err != nil {
			return fmt.Errorf("error storing config: %w", err)
		}
		return nil
	})
	record("update_config", err)
	if err != nil {
		return err
	}
	log.Info("[LEDGER] Config updated by ", caller)
	return nil
}

// IsController reports whether principal may run privileged operations.
func (l *Ledger) IsController(principal string) (bool, error) {
	cfg, err := l.config()
	if err != nil {
		return false, err
	}
	return cfg.IsController(principal), nil
}
