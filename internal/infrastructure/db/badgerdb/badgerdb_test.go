package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/absoluteru/community-api/internal/core/domain"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, repo *UserRepository, user *domain.User) {
	t.Helper()
	if _, err := repo.Mutate(context.Background(), user.SteamID, func(u *domain.User, found bool) error {
		*u = *user
		return nil
	}); err != nil {
		t.Fatalf("seed user %s: %v", user.SteamID, err)
	}
}

func TestUserRepository_RoundTrip(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	if _, err := repo.FindBySteamID(ctx, "76561198000000001"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing user err = %v, want ErrUserNotFound", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	seedUser(t, repo, &domain.User{
		SteamID:      "76561198000000001",
		DisplayName:  "scout",
		Avatar:       "https://avatars.example/scout.jpg",
		Role:         domain.RoleVIP,
		RegisteredAt: now,
		LastLogin:    now,
	})

	got, err := repo.FindBySteamID(ctx, "76561198000000001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.DisplayName != "scout" || got.Role != domain.RoleVIP || !got.RegisteredAt.Equal(now) {
		t.Fatalf("round trip mangled record: %+v", got)
	}
}

func TestUserRepository_Mutate(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	// A missing record reaches fn with found=false.
	created, err := repo.Mutate(ctx, "76561198000000001", func(u *domain.User, found bool) error {
		if found {
			t.Fatal("fn reported a record that was never written")
		}
		u.DisplayName = "scout"
		u.Role = domain.RolePlayer
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if created.SteamID != "76561198000000001" || created.Role != domain.RolePlayer {
		t.Fatalf("created record wrong: %+v", created)
	}

	// A later mutation sees the stored record and its write sticks.
	updated, err := repo.Mutate(ctx, "76561198000000001", func(u *domain.User, found bool) error {
		if !found || u.DisplayName != "scout" {
			t.Fatalf("fn got stale record: found=%v %+v", found, u)
		}
		u.Role = domain.RoleModerator
		return nil
	})
	if err != nil {
		t.Fatalf("mutate again: %v", err)
	}
	if updated.Role != domain.RoleModerator {
		t.Fatalf("update lost: %+v", updated)
	}

	got, err := repo.FindBySteamID(ctx, "76561198000000001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Role != domain.RoleModerator {
		t.Fatalf("persisted record stale: %+v", got)
	}

	// fn errors abort the write.
	boom := errors.New("rejected")
	if _, err := repo.Mutate(ctx, "76561198000000001", func(u *domain.User, found bool) error {
		u.Role = domain.RoleOwner
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want fn error", err)
	}
	got, _ = repo.FindBySteamID(ctx, "76561198000000001")
	if got.Role != domain.RoleModerator {
		t.Fatalf("aborted mutation leaked a write: %+v", got)
	}
}

func TestUserRepository_ListOrder(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Saved out of registration order on purpose.
	for i, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		seedUser(t, repo, &domain.User{
			SteamID:      fmt.Sprintf("7656119800000000%d", i),
			Role:         domain.RolePlayer,
			RegisteredAt: base.Add(offset),
		})
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len = %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i].RegisteredAt.Before(users[i-1].RegisteredAt) {
			t.Fatalf("listing not in registration order: %v before %v",
				users[i].RegisteredAt, users[i-1].RegisteredAt)
		}
	}
}

func TestFeedbackRepository_SubmissionOrder(t *testing.T) {
	db := openTestDB(t)
	repo, err := NewFeedbackRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	ctx := context.Background()

	// Ids in reverse lexicographic order prove the listing does not depend
	// on key order.
	ids := []string{"zz-first", "mm-second", "aa-third"}
	for _, id := range ids {
		item := &domain.Feedback{
			ID:      id,
			SteamID: "76561198000000001",
			Type:    domain.CategoryBug,
			Message: "report " + id,
			Status:  domain.StatusNew,
			Replies: []domain.Reply{},
		}
		if err := repo.Save(ctx, item); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d", len(items))
	}
	for i, id := range ids {
		if items[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestFeedbackRepository_MutateKeepsPosition(t *testing.T) {
	db := openTestDB(t)
	repo, err := NewFeedbackRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	ctx := context.Background()

	for _, id := range []string{"one", "two", "three"} {
		if err := repo.Save(ctx, &domain.Feedback{ID: id, Status: domain.StatusNew}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	updated, err := repo.Mutate(ctx, "one", func(f *domain.Feedback) error {
		f.Status = domain.StatusResolved
		f.Replies = append(f.Replies, domain.Reply{Author: "mod", Message: "done"})
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if updated.Status != domain.StatusResolved || len(updated.Replies) != 1 {
		t.Fatalf("mutation result wrong: %+v", updated)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].ID != "one" || items[0].Status != domain.StatusResolved || len(items[0].Replies) != 1 {
		t.Fatalf("updated item lost its position or content: %+v", items[0])
	}

	if _, err := repo.Mutate(ctx, "missing", func(f *domain.Feedback) error { return nil }); !errors.Is(err, domain.ErrFeedbackNotFound) {
		t.Fatalf("missing item err = %v, want ErrFeedbackNotFound", err)
	}
}

// Concurrent moderations of one item must not drop replies: the whole
// read-modify-write runs in one transaction, retried on commit conflicts.
func TestFeedbackRepository_ConcurrentReplies(t *testing.T) {
	db := openTestDB(t)
	repo, err := NewFeedbackRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	ctx := context.Background()

	if err := repo.Save(ctx, &domain.Feedback{ID: "contested", Status: domain.StatusNew, Replies: []domain.Reply{}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	const workers = 4
	const appends = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < appends; i++ {
				_, err := repo.Mutate(ctx, "contested", func(f *domain.Feedback) error {
					f.Replies = append(f.Replies, domain.Reply{
						Author:  fmt.Sprintf("mod-%d", w),
						Message: fmt.Sprintf("reply %d", i),
					})
					return nil
				})
				if err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		t.Fatalf("concurrent mutate: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := len(items[0].Replies); got != workers*appends {
		t.Fatalf("lost updates: %d replies stored, want %d", got, workers*appends)
	}
}

func seedStats(t *testing.T, repo *StatsRepository, stats *domain.PlayerStats) {
	t.Helper()
	if _, err := repo.Mutate(context.Background(), stats.SteamID, func(s *domain.PlayerStats) error {
		*s = *stats
		return nil
	}); err != nil {
		t.Fatalf("seed stats %s: %v", stats.SteamID, err)
	}
}

func TestFeedbackRepository_ListBySteamID(t *testing.T) {
	db := openTestDB(t)
	repo, err := NewFeedbackRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	ctx := context.Background()

	for i, author := range []string{"111", "222", "111", "111"} {
		item := &domain.Feedback{ID: fmt.Sprintf("fb-%d", i), SteamID: author}
		if err := repo.Save(ctx, item); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	mine, err := repo.ListBySteamID(ctx, "111")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("len = %d, want 3", len(mine))
	}
	for i, want := range []string{"fb-0", "fb-2", "fb-3"} {
		if mine[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, mine[i].ID, want)
		}
	}
}

func TestStatsRepository_ZeroDefault(t *testing.T) {
	repo := NewStatsRepository(openTestDB(t))
	ctx := context.Background()

	stats, err := repo.FindBySteamID(ctx, "76561198000000042")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stats.SteamID != "76561198000000042" || stats.Kills != 0 || stats.PlayTime != 0 {
		t.Fatalf("zero default wrong: %+v", stats)
	}
}

func TestStatsRepository_RoundTrip(t *testing.T) {
	repo := NewStatsRepository(openTestDB(t))
	ctx := context.Background()

	saved := &domain.PlayerStats{
		SteamID:     "76561198000000007",
		PlayTime:    3600,
		Kills:       12,
		Deaths:      4,
		Escapes:     2,
		GamesPlayed: 5,
		LastPlayed:  time.Now().UTC().Truncate(time.Second),
	}
	seedStats(t, repo, saved)

	got, err := repo.FindBySteamID(ctx, saved.SteamID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Kills != 12 || got.Deaths != 4 || got.PlayTime != 3600 || !got.LastPlayed.Equal(saved.LastPlayed) {
		t.Fatalf("round trip mangled record: %+v", got)
	}
}

// Concurrent merges for the same player must not lose counters.
func TestStatsRepository_ConcurrentMerges(t *testing.T) {
	repo := NewStatsRepository(openTestDB(t))
	ctx := context.Background()

	const workers = 4
	const increments = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < increments; i++ {
				_, err := repo.Mutate(ctx, "76561198000000007", func(s *domain.PlayerStats) error {
					s.Kills++
					return nil
				})
				if err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		t.Fatalf("concurrent mutate: %v", err)
	}

	got, err := repo.FindBySteamID(ctx, "76561198000000007")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Kills != workers*increments {
		t.Fatalf("lost updates: kills = %d, want %d", got.Kills, workers*increments)
	}
}
