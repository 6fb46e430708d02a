package gamequery

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/absoluteru/community-api/internal/core/domain"
)

var (
	errShortPacket = errors.New("gamequery: truncated packet")
	errBadHeader   = errors.New("gamequery: unexpected packet header")
)

// packetReader is a cursor over a query response payload. The first read
// error sticks; callers check err once after the last field.
type packetReader struct {
	buf []byte
	off int
	err error
}

func (r *packetReader) readByte() byte {
	if r.err != nil || r.off >= len(r.buf) {
		r.err = errShortPacket
		return 0
	}
	b := r.buf[r.off]
	r.off++
	return b
}

func (r *packetReader) readShort() uint16 {
	if r.err != nil || r.off+2 > len(r.buf) {
		r.err = errShortPacket
		return 0
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *packetReader) readLong() int32 {
	if r.err != nil || r.off+4 > len(r.buf) {
		r.err = errShortPacket
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *packetReader) readFloat() float32 {
	return math.Float32frombits(uint32(r.readLong()))
}

func (r *packetReader) readString() string {
	if r.err != nil {
		return ""
	}
	start := r.off
	for r.off < len(r.buf) {
		if r.buf[r.off] == 0 {
			s := string(r.buf[start:r.off])
			r.off++
			return s
		}
		r.off++
	}
	r.err = errShortPacket
	return ""
}

// parseInfo decodes an A2S_INFO response payload (after the 0xFFFFFFFF
// simple-packet header) into a status snapshot.
func parseInfo(payload []byte) (*domain.ServerStatus, error) {
	r := &packetReader{buf: payload}

	if r.readByte() != 'I' {
		return nil, errBadHeader
	}
	_ = r.readByte() // protocol version
	name := r.readString()
	mapName := r.readString()
	_ = r.readString() // folder
	_ = r.readString() // game
	_ = r.readShort()  // app id
	players := r.readByte()
	maxPlayers := r.readByte()
	if r.err != nil {
		return nil, r.err
	}

	return &domain.ServerStatus{
		Online:     true,
		Name:       name,
		Map:        mapName,
		Players:    int(players),
		MaxPlayers: int(maxPlayers),
	}, nil
}

// parsePlayers decodes an A2S_PLAYER response payload into the connected
// player list.
func parsePlayers(payload []byte) ([]domain.PlayerPresence, error) {
	r := &packetReader{buf: payload}

	if r.readByte() != 'D' {
		return nil, errBadHeader
	}
	count := int(r.readByte())

	list := make([]domain.PlayerPresence, 0, count)
	for i := 0; i < count; i++ {
		_ = r.readByte() // index
		name := r.readString()
		score := r.readLong()
		_ = r.readFloat() // connect duration
		if r.err != nil {
			return nil, r.err
		}
		list = append(list, domain.PlayerPresence{Name: name, Score: int(score)})
	}
	return list, nil
}
