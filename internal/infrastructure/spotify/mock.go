// Package spotify provides a mock listening-history provider standing in for
// a real music-service integration.
package spotify

import (
	"context"

	"github.com/pintunes/pintunes-api/internal/core/ports"
)

// MockProvider returns the same canned listening data for every user.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) ListeningData(_ context.Context, _ string) (*ports.ListeningData, error) {
	return &ports.ListeningData{
		TopArtists: []string{"Justin Bieber", "Ed Sheeran", "The Kid LAROI"},
		TopGenres:  []string{"Pop", "R&B", "Dance Pop"},
		RecentlyPlayed: []ports.Track{
			{Title: "Peaches", Artist: "Justin Bieber"},
			{Title: "Stay", Artist: "The Kid LAROI & Justin Bieber"},
			{Title: "Ghost", Artist: "Justin Bieber"},
		},
		Playlists: []ports.Playlist{
			{Name: "Pop Hits", Genre: "Pop"},
			{Name: "Chill R&B", Genre: "R&B"},
			{Name: "Dance Party", Genre: "Dance Pop"},
		},
	}, nil
}
