package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/absoluteru/community-api/internal/core/domain"
)

type stubStatsService struct {
	stats   map[string]*domain.PlayerStats
	updated []string
	err     error
}

func (s *stubStatsService) Get(_ context.Context, steamID string) (*domain.PlayerStats, error) {
	if stats, ok := s.stats[steamID]; ok {
		copied := *stats
		return &copied, nil
	}
	return &domain.PlayerStats{SteamID: steamID}, nil
}

func (s *stubStatsService) Update(_ context.Context, apiKey, steamID string, patch domain.StatsPatch) (*domain.PlayerStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updated = append(s.updated, steamID)
	return &domain.PlayerStats{SteamID: steamID}, nil
}

func TestStatsHandler_Get(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{stats: map[string]*domain.PlayerStats{
		"76561198000000007": {SteamID: "76561198000000007", Kills: 30, Deaths: 12},
	}})
	c, rec := newJSONContext(t, http.MethodGet, "/api/stats/76561198000000007", "")
	c.SetParamNames("id")
	c.SetParamValues("76561198000000007")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Kills != 30 || resp.KD != 2.5 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestStatsHandler_Get_ZeroDefault(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{})
	c, rec := newJSONContext(t, http.MethodGet, "/api/stats/76561198000000042", "")
	c.SetParamNames("id")
	c.SetParamValues("76561198000000042")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SteamID != "76561198000000042" || resp.Kills != 0 || resp.KD != 0 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestStatsHandler_Update(t *testing.T) {
	svc := &stubStatsService{}
	h := NewStatsHandler(svc)
	c, rec := newJSONContext(t, http.MethodPost, "/api/stats/update",
		`{"apiKey":"server-secret","steamID":"76561198000000007","data":{"kills":3}}`)

	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(svc.updated) != 1 || svc.updated[0] != "76561198000000007" {
		t.Fatalf("service call = %v", svc.updated)
	}
}

func TestStatsHandler_Update_BadPayload(t *testing.T) {
	svc := &stubStatsService{}
	h := NewStatsHandler(svc)

	cases := []struct{ name, body string }{
		{"missing key", `{"steamID":"76561198000000007","data":{}}`},
		{"non-numeric id", `{"apiKey":"server-secret","steamID":"abc","data":{}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(t, http.MethodPost, "/api/stats/update", tc.body)
			if err := h.Update(c); err == nil {
				t.Fatal("expected validation error")
			}
			if len(svc.updated) != 0 {
				t.Fatal("service must not be called on invalid payload")
			}
		})
	}
}

func TestStatsHandler_Update_BadKey(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{err: domain.ErrBadStatsKey})
	c, _ := newJSONContext(t, http.MethodPost, "/api/stats/update",
		`{"apiKey":"wrong","steamID":"76561198000000007","data":{}}`)

	if err := h.Update(c); err != domain.ErrBadStatsKey {
		t.Fatalf("err = %v, want ErrBadStatsKey", err)
	}
}
