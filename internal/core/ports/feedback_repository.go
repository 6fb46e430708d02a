package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// FeedbackRepository defines persistence for the feedback collection.
// All listings preserve submission order.
type FeedbackRepository interface {
	// Save writes the full feedback record (insert or overwrite).
	Save(ctx context.Context, item *domain.Feedback) error
	// Mutate applies fn to the item with the given id and writes the result
	// back inside one transaction, so concurrent moderations of the same
	// item cannot lose replies or status changes. Returns
	// domain.ErrFeedbackNotFound when no such record exists.
	Mutate(ctx context.Context, id string, fn func(item *domain.Feedback) error) (*domain.Feedback, error)
	// List returns the whole collection in submission order.
	List(ctx context.Context) ([]domain.Feedback, error)
	// ListBySteamID returns the author's items in submission order.
	ListBySteamID(ctx context.Context, steamID string) ([]domain.Feedback, error)
}
