package ports

import (
	"context"
	"io"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

// CreatePostInput is the payload for publishing a feed entry.
type CreatePostInput struct {
	AuthorCID  string
	AuthorName string
	Content    string
	// Image, when non-nil, is pinned first and referenced from the post.
	Image         io.Reader
	ImageFilename string
}

// PostService creates and lists feed posts.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	// List returns all well-formed posts; entries that fail to fetch or
	// parse are skipped, not fatal.
	List(ctx context.Context) ([]domain.Post, error)
}
