package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/absoluteru/community-api/internal/core/ports"
)

var ErrProfileNotFound = errors.New("steam: profile not found")

// playerSummariesResponse mirrors the GetPlayerSummaries v2 payload, reduced
// to the fields this service consumes.
type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			SteamID     string `json:"steamid"`
			PersonaName string `json:"personaname"`
			AvatarFull  string `json:"avatarfull"`
		} `json:"players"`
	} `json:"response"`
}

// FetchProfile retrieves the display snapshot for a SteamID64 via the Steam
// Web API.
func (p *Provider) FetchProfile(ctx context.Context, steamID string) (*ports.SignInProfile, error) {
	query := url.Values{
		"key":      {p.apiKey},
		"steamids": {steamID},
	}
	endpoint := webAPIBase + "/ISteamUser/GetPlayerSummaries/v2/?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam: player summaries status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var summaries playerSummariesResponse
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, err
	}
	if len(summaries.Response.Players) == 0 {
		return nil, ErrProfileNotFound
	}

	player := summaries.Response.Players[0]
	return &ports.SignInProfile{
		SteamID:     player.SteamID,
		DisplayName: player.PersonaName,
		Avatar:      player.AvatarFull,
	}, nil
}
