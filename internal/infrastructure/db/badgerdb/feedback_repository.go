package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/absoluteru/community-api/internal/core/domain"
)

const (
	feedbackPrefix = "feedback:"
	feedbackSeqKey = "seq:feedback"
)

// feedbackRecord wraps a feedback item with a durable sequence number so
// listings can reproduce submission order regardless of id or timestamp.
type feedbackRecord struct {
	Seq  uint64          `json:"seq"`
	Item domain.Feedback `json:"item"`
}

// FeedbackRepository persists the feedback collection.
type FeedbackRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewFeedbackRepository(db *badger.DB) (*FeedbackRepository, error) {
	seq, err := db.GetSequence([]byte(feedbackSeqKey), 64)
	if err != nil {
		return nil, err
	}
	return &FeedbackRepository{db: db, seq: seq}, nil
}

// Close releases the sequence lease. Call once on shutdown.
func (r *FeedbackRepository) Close() error {
	return r.seq.Release()
}

func feedbackKey(id string) []byte {
	return []byte(feedbackPrefix + id)
}

// Save writes the full feedback record in one transaction. New items are
// assigned the next position in submission order; existing items keep
// theirs.
func (r *FeedbackRepository) Save(_ context.Context, item *domain.Feedback) error {
	return update(r.db, func(txn *badger.Txn) error {
		rec := feedbackRecord{Item: *item}

		stored, err := txn.Get(feedbackKey(item.ID))
		switch {
		case err == nil:
			var prev feedbackRecord
			if err := stored.Value(func(val []byte) error {
				return json.Unmarshal(val, &prev)
			}); err != nil {
				return err
			}
			rec.Seq = prev.Seq
		case errors.Is(err, badger.ErrKeyNotFound):
			n, seqErr := r.seq.Next()
			if seqErr != nil {
				return seqErr
			}
			rec.Seq = n
		default:
			return err
		}

		data, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		return txn.Set(feedbackKey(item.ID), data)
	})
}

// Mutate runs a full read-modify-write cycle on one feedback item inside a
// single transaction, so concurrent moderations cannot drop each other's
// replies or status changes.
func (r *FeedbackRepository) Mutate(_ context.Context, id string, fn func(item *domain.Feedback) error) (*domain.Feedback, error) {
	var out domain.Feedback
	err := update(r.db, func(txn *badger.Txn) error {
		stored, err := txn.Get(feedbackKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrFeedbackNotFound
			}
			return err
		}

		var rec feedbackRecord
		if err := stored.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return err
		}

		if err := fn(&rec.Item); err != nil {
			return err
		}

		data, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		if err := txn.Set(feedbackKey(id), data); err != nil {
			return err
		}
		out = rec.Item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns the whole collection in submission order.
func (r *FeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	return r.list(ctx, "")
}

// ListBySteamID returns the author's items in submission order.
func (r *FeedbackRepository) ListBySteamID(ctx context.Context, steamID string) ([]domain.Feedback, error) {
	return r.list(ctx, steamID)
}

// list scans the collection, optionally filtered by author, sorted by the
// durable sequence number.
func (r *FeedbackRepository) list(_ context.Context, steamID string) ([]domain.Feedback, error) {
	records := make([]feedbackRecord, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(feedbackPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec feedbackRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			if steamID != "" && rec.Item.SteamID != steamID {
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })

	items := make([]domain.Feedback, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.Item)
	}
	return items, nil
}
