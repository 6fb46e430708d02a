package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// FeedbackService implements submission, listing and staff triage of
// feedback items.
type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

// Submit appends a new item with status "new" and no replies. The author's
// display name and avatar are captured at submission time.
func (s *FeedbackService) Submit(ctx context.Context, author *domain.User, input ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if author == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !input.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	item := &domain.Feedback{
		ID:        uuid.NewString(),
		SteamID:   author.SteamID,
		Author:    author.DisplayName,
		Avatar:    author.Avatar,
		Type:      input.Category,
		Message:   input.Message,
		Status:    domain.StatusNew,
		CreatedAt: time.Now().UTC(),
		Replies:   []domain.Reply{},
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", item.ID).
		Str("steam_id", author.SteamID).
		Str("type", string(input.Category)).
		Msg("feedback submitted")

	return item, nil
}

// ListMine returns the caller's items in submission order.
func (s *FeedbackService) ListMine(ctx context.Context, steamID string) ([]domain.Feedback, error) {
	return s.repo.ListBySteamID(ctx, steamID)
}

// ListAll returns the full collection in submission order.
func (s *FeedbackService) ListAll(ctx context.Context, actor *domain.User) ([]domain.Feedback, error) {
	if !domain.Authorize(actor, domain.LevelModerator) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

// Moderate sets the item's status and/or appends a reply authored by the
// acting moderator. At least one of the two must be present. The whole
// update runs inside one store transaction, so two moderators working on
// the same item cannot drop each other's replies.
func (s *FeedbackService) Moderate(ctx context.Context, actor *domain.User, id string, input ports.ModerateFeedbackInput) (*domain.Feedback, error) {
	if !domain.Authorize(actor, domain.LevelModerator) {
		return nil, domain.ErrForbidden
	}
	if input.Status == "" && strings.TrimSpace(input.Reply) == "" {
		return nil, domain.ErrEmptyUpdate
	}
	if input.Status != "" && !domain.FeedbackStatus(input.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	item, err := s.repo.Mutate(ctx, id, func(f *domain.Feedback) error {
		if input.Status != "" {
			f.Status = domain.FeedbackStatus(input.Status)
		}
		if reply := strings.TrimSpace(input.Reply); reply != "" {
			f.Replies = append(f.Replies, domain.Reply{
				Author:    actor.DisplayName,
				SteamID:   actor.SteamID,
				Message:   reply,
				CreatedAt: time.Now().UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", item.ID).
		Str("moderator", actor.SteamID).
		Str("status", string(item.Status)).
		Msg("feedback updated")

	return item, nil
}
