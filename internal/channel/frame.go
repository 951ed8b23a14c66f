package channel

import "fmt"

// Wire frame types.
const (
	frameText     = "text"
	framePhoto    = "photo"
	frameFile     = "file"
	frameCommand  = "command"
	frameReply    = "reply"
	frameDocument = "document"
)

// frame is the JSON wire format in both directions. Binary payloads ride as
// base64 via encoding/json's []byte handling.
type frame struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	Command  string       `json:"command,omitempty"`
	Filename string       `json:"filename,omitempty"`
	Data     []byte       `json:"data,omitempty"`
	Photo    []photoFrame `json:"photo,omitempty"`
}

type photoFrame struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

func (f frame) event(session string) (Event, error) {
	switch f.Type {
	case frameText:
		return Event{SessionID: session, Kind: KindText, Text: f.Text}, nil
	case frameCommand:
		if f.Command == "" {
			return Event{}, fmt.Errorf("command frame without command")
		}
		return Event{SessionID: session, Kind: KindCommand, Command: f.Command}, nil
	case framePhoto:
		if len(f.Photo) == 0 {
			return Event{}, fmt.Errorf("photo frame without renditions")
		}
		renditions := make([]Rendition, 0, len(f.Photo))
		for _, p := range f.Photo {
			renditions = append(renditions, Rendition{Width: p.Width, Height: p.Height, Data: p.Data})
		}
		return Event{SessionID: session, Kind: KindPhoto, Photo: renditions}, nil
	case frameFile:
		return Event{SessionID: session, Kind: KindFile, Filename: f.Filename}, nil
	default:
		return Event{}, fmt.Errorf("unknown frame type %q", f.Type)
	}
}
