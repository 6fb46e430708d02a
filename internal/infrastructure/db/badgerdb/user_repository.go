package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/absoluteru/community-api/internal/core/domain"
)

const userPrefix = "user:"

// UserRepository persists the users collection.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

func userKey(steamID string) []byte {
	return []byte(userPrefix + steamID)
}

// FindBySteamID returns the user record, or domain.ErrUserNotFound.
func (r *UserRepository) FindBySteamID(_ context.Context, steamID string) (*domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(steamID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Mutate runs a full read-modify-write cycle on one user record inside a
// single transaction. fn sees the stored record (found=true) or a fresh one
// carrying only the steamID.
func (r *UserRepository) Mutate(_ context.Context, steamID string, fn func(user *domain.User, found bool) error) (*domain.User, error) {
	var user domain.User
	err := update(r.db, func(txn *badger.Txn) error {
		user = domain.User{SteamID: steamID}
		found := false

		item, err := txn.Get(userKey(steamID))
		switch {
		case err == nil:
			found = true
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &user)
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
		default:
			return err
		}

		if err := fn(&user, found); err != nil {
			return err
		}

		data, err := json.Marshal(&user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(steamID), data)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user ordered by registration time.
func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var user domain.User
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &user)
			}); err != nil {
				return err
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].RegisteredAt.Equal(users[j].RegisteredAt) {
			return users[i].SteamID < users[j].SteamID
		}
		return users[i].RegisteredAt.Before(users[j].RegisteredAt)
	})
	return users, nil
}
