package helpers

import (
	"testing"
	"time"
)

func TestStoragePathConvention(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	tests := []struct {
		folder   string
		filename string
		want     string
	}{
		{"genres", "rock.png", "genres/1700000000000_rock"},
		{"songs/audio", "My Track (final).mp3", "songs/audio/1700000000000_My-Track-final"},
		{"artists", "../../etc/passwd", "artists/1700000000000_passwd"},
		{"genres", "...", "genres/1700000000000_file"},
	}

	for _, tt := range tests {
		if got := storagePathAt(tt.folder, tt.filename, at); got != tt.want {
			t.Errorf("storagePathAt(%q, %q) = %q, want %q", tt.folder, tt.filename, got, tt.want)
		}
	}
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantID       string
		wantResource string
		wantErr      bool
	}{
		{
			name:         "image with version",
			url:          "https://res.cloudinary.com/demo/image/upload/v1699999999/genres/1700000000000_rock.png",
			wantID:       "genres/1700000000000_rock",
			wantResource: "image",
		},
		{
			name:         "audio under nested folder",
			url:          "https://res.cloudinary.com/demo/video/upload/v1/songs/audio/1700000000000_track.mp3",
			wantID:       "songs/audio/1700000000000_track",
			wantResource: "video",
		},
		{
			name:         "no version segment",
			url:          "https://res.cloudinary.com/demo/image/upload/artists/1_band.jpg",
			wantID:       "artists/1_band",
			wantResource: "image",
		},
		{
			name:    "not a delivery URL",
			url:     "https://example.com/some/image.png",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, resource, err := publicIDFromURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("publicIDFromURL: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("public id = %q, want %q", id, tt.wantID)
			}
			if resource != tt.wantResource {
				t.Errorf("resource type = %q, want %q", resource, tt.wantResource)
			}
		})
	}
}
