// Package channel is the messaging boundary: inbound user events and the
// Sender contract for replies and generated documents. The service core only
// sees these types; the WebSocket adapter is one concrete transport.
package channel

import (
	"context"
	"errors"
)

// Kind discriminates inbound event payloads.
type Kind string

const (
	KindText    Kind = "text"
	KindPhoto   Kind = "photo"
	KindFile    Kind = "file"
	KindCommand Kind = "command"
)

// Rendition is one stored size of an inbound photo. Transports that deliver
// multiple resolutions of the same shot send them all; the largest is used.
type Rendition struct {
	Width  int
	Height int
	Data   []byte
}

// Event is one inbound message, tagged with the identity the transport
// provides.
type Event struct {
	SessionID string
	Kind      Kind
	Text      string
	Command   string
	Filename  string
	Photo     []Rendition
}

// LargestPhoto returns the highest-resolution rendition's bytes, preferring
// pixel area and falling back to payload size, or nil without renditions.
func (e Event) LargestPhoto() []byte {
	var best *Rendition
	for i := range e.Photo {
		r := &e.Photo[i]
		if best == nil {
			best = r
			continue
		}
		area, bestArea := r.Width*r.Height, best.Width*best.Height
		if area > bestArea || (area == bestArea && len(r.Data) > len(best.Data)) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	return best.Data
}

// ErrNotConnected indicates the session has no live connection to send to.
var ErrNotConnected = errors.New("session has no active connection")

// Sender delivers outbound replies and documents to a session's user.
type Sender interface {
	SendText(ctx context.Context, sessionID, text string) error
	SendDocument(ctx context.Context, sessionID, filename string, data []byte) error
}
