// Package gamequery queries a game server over the A2S UDP protocol with a
// bounded deadline. Every query is a single best-effort attempt; callers
// handle failure by substituting an offline snapshot.
package gamequery

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/absoluteru/community-api/internal/core/domain"
)

const (
	headerInfo      = 0x54 // A2S_INFO request
	headerPlayer    = 0x55 // A2S_PLAYER request
	headerChallenge = 0x41 // server challenge response

	maxPacketSize = 1400
)

var simpleHeader = []byte{0xFF, 0xFF, 0xFF, 0xFF}

// Client queries one game server address.
type Client struct {
	addr    string
	timeout time.Duration
}

func NewClient(host string, port int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{addr: net.JoinHostPort(host, fmt.Sprint(port)), timeout: timeout}
}

// Query performs an A2S_INFO request, followed by a best-effort A2S_PLAYER
// request for the connected player list. A player-list failure does not fail
// the query; an info failure does.
func (c *Client) Query(ctx context.Context) (*domain.ServerStatus, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp", c.addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	status, err := c.queryInfo(conn)
	if err != nil {
		return nil, err
	}

	if players, err := c.queryPlayers(conn); err == nil {
		status.PlayersList = players
	}
	return status, nil
}

func (c *Client) queryInfo(conn net.Conn) (*domain.ServerStatus, error) {
	request := append([]byte{headerInfo}, "Source Engine Query\x00"...)

	payload, err := c.exchange(conn, request)
	if err != nil {
		return nil, err
	}
	// Challenge-gated servers answer with 0x41 + 4 challenge bytes; replay
	// the request with the challenge appended.
	if payload[0] == headerChallenge {
		if len(payload) < 5 {
			return nil, errShortPacket
		}
		payload, err = c.exchange(conn, append(request, payload[1:5]...))
		if err != nil {
			return nil, err
		}
	}
	return parseInfo(payload)
}

func (c *Client) queryPlayers(conn net.Conn) ([]domain.PlayerPresence, error) {
	request := []byte{headerPlayer, 0xFF, 0xFF, 0xFF, 0xFF}

	payload, err := c.exchange(conn, request)
	if err != nil {
		return nil, err
	}
	if payload[0] == headerChallenge {
		if len(payload) < 5 {
			return nil, errShortPacket
		}
		payload, err = c.exchange(conn, append([]byte{headerPlayer}, payload[1:5]...))
		if err != nil {
			return nil, err
		}
	}
	return parsePlayers(payload)
}

// exchange sends one framed request and returns the response payload with
// the simple-packet header stripped.
func (c *Client) exchange(conn net.Conn, request []byte) ([]byte, error) {
	packet := append(append([]byte{}, simpleHeader...), request...)
	if _, err := conn.Write(packet); err != nil {
		return nil, err
	}

	buf := make([]byte, maxPacketSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	if n <= len(simpleHeader) {
		return nil, errShortPacket
	}
	for i, b := range simpleHeader {
		if buf[i] != b {
			return nil, errBadHeader
		}
	}
	return buf[len(simpleHeader):n], nil
}
