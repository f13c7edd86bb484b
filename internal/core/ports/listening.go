package ports

import "context"

// Track is a single recently-played item.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Playlist is a named playlist with a dominant genre.
type Playlist struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

// ListeningData is a user's music taste summary.
type ListeningData struct {
	TopArtists     []string   `json:"top_artists"`
	TopGenres      []string   `json:"top_genres"`
	RecentlyPlayed []Track    `json:"recently_played"`
	Playlists      []Playlist `json:"playlists"`
}

// ListeningHistory provides a user's listening data. The current
// implementation is a mock standing in for a real music-service integration.
type ListeningHistory interface {
	ListeningData(ctx context.Context, userCID string) (*ListeningData, error)
}
