package domain

import "time"

// FeedbackCategory classifies a feedback item.
type FeedbackCategory string

const (
	CategoryBug        FeedbackCategory = "bug"
	CategorySuggestion FeedbackCategory = "suggestion"
	CategoryQuestion   FeedbackCategory = "question"
	CategoryOther      FeedbackCategory = "other"
)

var feedbackCategories = map[FeedbackCategory]struct{}{
	CategoryBug:        {},
	CategorySuggestion: {},
	CategoryQuestion:   {},
	CategoryOther:      {},
}

// Valid reports whether c is a member of the closed category set.
func (c FeedbackCategory) Valid() bool {
	_, ok := feedbackCategories[c]
	return ok
}

// FeedbackStatus represents the triage state of a feedback item.
type FeedbackStatus string

const (
	StatusNew        FeedbackStatus = "new"
	StatusInProgress FeedbackStatus = "in_progress"
	StatusResolved   FeedbackStatus = "resolved"
	StatusClosed     FeedbackStatus = "closed"
)

var feedbackStatuses = map[FeedbackStatus]struct{}{
	StatusNew:        {},
	StatusInProgress: {},
	StatusResolved:   {},
	StatusClosed:     {},
}

// Valid reports whether s is a member of the closed status set.
func (s FeedbackStatus) Valid() bool {
	_, ok := feedbackStatuses[s]
	return ok
}

// Reply is a single staff answer on a feedback item.
type Reply struct {
	Author    string    `json:"author"`
	SteamID   string    `json:"steamID"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feedback is a user-submitted report. Author display fields are denormalized
// at submission time so the item survives later profile changes. Items are
// append-only: replies accumulate, the item itself is never deleted.
type Feedback struct {
	ID        string           `json:"id"`
	SteamID   string           `json:"steamID"`
	Author    string           `json:"author"`
	Avatar    string           `json:"avatar"`
	Type      FeedbackCategory `json:"type"`
	Message   string           `json:"message"`
	Status    FeedbackStatus   `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	Replies   []Reply          `json:"replies"`
}
