package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pintunes/pintunes-api/internal/api/metrics"
	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

const (
	postRecordName = "pintunes-post"
	tagTypePost    = "post"
)

// PostService creates and lists feed posts. Every post is an independent
// pinned object tagged type=post; there is no feed index beyond the store's
// own keyvalue filter.
type PostService struct {
	store  ports.PinStore
	logger zerolog.Logger
}

func NewPostService(store ports.PinStore, logger zerolog.Logger) *PostService {
	return &PostService{store: store, logger: logger}
}

func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("%w: post content is empty", domain.ErrValidation)
	}

	withImage := "false"
	var imageCID string
	if input.Image != nil {
		cid, err := s.store.PinFile(ctx, input.ImageFilename, map[string]string{"type": "post-image"}, input.Image)
		if err != nil {
			return nil, fmt.Errorf("pin post image: %w", err)
		}
		imageCID = cid
		withImage = "true"
	}

	post := domain.Post{
		AuthorCID:  input.AuthorCID,
		AuthorName: input.AuthorName,
		Content:    input.Content,
		ImageCID:   imageCID,
		CreatedAt:  time.Now().UTC(),
	}

	cid, err := s.store.PinJSON(ctx, postRecordName, map[string]string{"type": tagTypePost}, post)
	if err != nil {
		return nil, fmt.Errorf("pin post: %w", err)
	}
	post.CID = cid

	metrics.PostsCreatedTotal.WithLabelValues(withImage).Inc()
	s.logger.Info().Str("cid", cid).Str("author", post.AuthorName).Msg("post pinned")
	return &post, nil
}

// List returns every well-formed post the store knows about. Entries whose
// payload cannot be fetched or parsed are skipped and logged, so one bad pin
// never empties the whole feed. No ordering beyond the store's list order.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	entries, err := s.store.List(ctx, map[string]string{"type": tagTypePost})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(entries))
	for _, entry := range entries {
		var post domain.Post
		if err := s.store.FetchJSON(ctx, entry.CID, &post); err != nil {
			metrics.PostsSkippedTotal.WithLabelValues("fetch_failed").Inc()
			s.logger.Warn().Err(err).Str("cid", entry.CID).Msg("skipping unreadable post")
			continue
		}
		if post.Content == "" {
			metrics.PostsSkippedTotal.WithLabelValues("parse_failed").Inc()
			s.logger.Warn().Str("cid", entry.CID).Msg("skipping malformed post payload")
			continue
		}
		post.CID = entry.CID
		posts = append(posts, post)
	}
	return posts, nil
}
