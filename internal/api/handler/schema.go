package handler

import (
	"time"

	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type submitFeedbackRequest struct {
	Type    string `json:"type"    validate:"required,oneof=bug suggestion question other"`
	Message string `json:"message" validate:"required,max=4000"`
}

type moderateFeedbackRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=new in_progress resolved closed"`
	Reply  string `json:"reply"  validate:"omitempty,max=4000"`
}

type statsUpdateRequest struct {
	APIKey  string            `json:"apiKey"  validate:"required"`
	SteamID string            `json:"steamID" validate:"required,numeric"`
	Data    domain.StatsPatch `json:"data"`
}

type changeRoleRequest struct {
	SteamID string `json:"steamID" validate:"required,numeric"`
	NewRole string `json:"newRole" validate:"required"`
}

// --- Response types ---

// currentUserResponse is the session profile served to the presentation
// shell. Unauthenticated sessions carry only the marker.
type currentUserResponse struct {
	Authenticated bool             `json:"authenticated"`
	SteamID       string           `json:"steamID,omitempty"`
	DisplayName   string           `json:"displayName,omitempty"`
	Avatar        string           `json:"avatar,omitempty"`
	Role          domain.Role      `json:"role,omitempty"`
	RoleInfo      *domain.RoleInfo `json:"roleInfo,omitempty"`
	RegisteredAt  *time.Time       `json:"registeredAt,omitempty"`
	LastLogin     *time.Time       `json:"lastLogin,omitempty"`
}

// statsResponse augments the stored counters with the derived kill/death
// ratio.
type statsResponse struct {
	domain.PlayerStats
	KD float64 `json:"kd"`
}

type feedbackResponse struct {
	Success  bool             `json:"success"`
	Feedback *domain.Feedback `json:"feedback"`
}

type changeRoleResponse struct {
	Success bool              `json:"success"`
	User    ports.UserAccount `json:"user"`
}

type statsUpdateResponse struct {
	Success bool `json:"success"`
}
