package channel_test

import (
	"bytes"
	"testing"

	"braincheck/internal/channel"
)

func TestLargestPhoto(t *testing.T) {
	tests := []struct {
		name  string
		photo []channel.Rendition
		want  []byte
	}{
		{
			name:  "no renditions",
			photo: nil,
			want:  nil,
		},
		{
			name: "single rendition",
			photo: []channel.Rendition{
				{Width: 100, Height: 100, Data: []byte("only")},
			},
			want: []byte("only"),
		},
		{
			name: "largest area wins",
			photo: []channel.Rendition{
				{Width: 90, Height: 90, Data: []byte("thumb")},
				{Width: 320, Height: 240, Data: []byte("medium")},
				{Width: 1280, Height: 960, Data: []byte("full")},
			},
			want: []byte("full"),
		},
		{
			name: "order does not matter",
			photo: []channel.Rendition{
				{Width: 1280, Height: 960, Data: []byte("full")},
				{Width: 90, Height: 90, Data: []byte("thumb")},
			},
			want: []byte("full"),
		},
		{
			name: "area tie falls back to payload size",
			photo: []channel.Rendition{
				{Width: 100, Height: 100, Data: []byte("small-payload")},
				{Width: 100, Height: 100, Data: []byte("noticeably-larger-payload")},
			},
			want: []byte("noticeably-larger-payload"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := channel.Event{Kind: channel.KindPhoto, Photo: tt.photo}
			if got := ev.LargestPhoto(); !bytes.Equal(got, tt.want) {
				t.Errorf("LargestPhoto() = %q, want %q", got, tt.want)
			}
		})
	}
}
