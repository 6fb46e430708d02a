package ports

import (
	"context"

	"github.com/absoluteru/community-api/internal/core/domain"
)

// SubmitFeedbackInput carries a new feedback submission.
type SubmitFeedbackInput struct {
	Category domain.FeedbackCategory
	Message  string
}

// ModerateFeedbackInput carries a staff update to an existing item. Both
// fields are optional, but at least one must be present.
type ModerateFeedbackInput struct {
	Status string // new status; empty means unchanged
	Reply  string // reply text; empty means no reply
}

// FeedbackService defines the feedback use cases.
type FeedbackService interface {
	// Submit appends a new item authored by the given user with status "new"
	// and no replies.
	Submit(ctx context.Context, author *domain.User, input SubmitFeedbackInput) (*domain.Feedback, error)
	// ListMine returns the caller's items in submission order.
	ListMine(ctx context.Context, steamID string) ([]domain.Feedback, error)
	// ListAll returns the full collection in submission order. The actor must
	// be at moderator level or above.
	ListAll(ctx context.Context, actor *domain.User) ([]domain.Feedback, error)
	// Moderate sets the status and/or appends a reply authored by the acting
	// moderator.
	Moderate(ctx context.Context, actor *domain.User, id string, input ModerateFeedbackInput) (*domain.Feedback, error)
}
