package badgerdb

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v3"

	"github.com/absoluteru/community-api/internal/core/domain"
)

const statsPrefix = "stats:"

// StatsRepository persists the stats collection.
type StatsRepository struct {
	db *badger.DB
}

func NewStatsRepository(db *badger.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func statsKey(steamID string) []byte {
	return []byte(statsPrefix + steamID)
}

// FindBySteamID returns the stored record, or a zero-valued record for ids
// that were never written. Absence is not an error.
func (r *StatsRepository) FindBySteamID(_ context.Context, steamID string) (*domain.PlayerStats, error) {
	var stats domain.PlayerStats
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(statsKey(steamID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.PlayerStats{SteamID: steamID}, nil
		}
		return nil, err
	}
	return &stats, nil
}

// Mutate runs a full read-modify-write cycle on one stats record inside a
// single transaction. fn sees the stored record or the zero-valued default.
func (r *StatsRepository) Mutate(_ context.Context, steamID string, fn func(stats *domain.PlayerStats) error) (*domain.PlayerStats, error) {
	var stats domain.PlayerStats
	err := update(r.db, func(txn *badger.Txn) error {
		stats = domain.PlayerStats{SteamID: steamID}

		item, err := txn.Get(statsKey(steamID))
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
		default:
			return err
		}

		if err := fn(&stats); err != nil {
			return err
		}

		data, err := json.Marshal(&stats)
		if err != nil {
			return err
		}
		return txn.Set(statsKey(steamID), data)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
