package store

import (
	"errors"
	"fmt"

	"github.com/inovacc/trendr/internal/config"
)

// ErrQuotaExceeded is returned when a value is larger than the medium allows.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Medium is a synchronous key-value store of textual values.
type Medium interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Ping() error
	Close() error
}

// Open creates the medium selected by cfg.Driver.
func Open(cfg config.StoreConfig) (Medium, error) {
	switch cfg.Driver {
	case config.DriverBolt, "":
		return NewBolt(cfg.Path, cfg.MaxValueBytes)
	case config.DriverSQLite:
		return NewSQLite(cfg.Path, cfg.MaxValueBytes)
	case config.DriverPostgres:
		return NewPostgres(cfg.DSN, cfg.MaxValueBytes)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func checkQuota(limit int, key, value string) error {
	if limit > 0 && len(value) > limit {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrQuotaExceeded, key, len(value), limit)
	}

	return nil
}
