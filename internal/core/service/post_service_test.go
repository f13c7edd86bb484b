package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

func TestPostService_Create_Success(t *testing.T) {
	store := newStubPinStore()
	svc := NewPostService(store, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{
		AuthorCID:  "QmUser",
		AuthorName: "ana",
		Content:    "first listen of the new album",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.CID == "" {
		t.Fatalf("expected post cid")
	}
	if post.ImageCID != "" {
		t.Fatalf("expected no image cid, got %s", post.ImageCID)
	}
	if post.CreatedAt.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
}

func TestPostService_Create_EmptyContent(t *testing.T) {
	store := newStubPinStore()
	svc := NewPostService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreatePostInput{AuthorName: "ana"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected rejection before any store call, got %v", store.calls)
	}
}

func TestPostService_Create_PinsImageFirst(t *testing.T) {
	store := newStubPinStore()
	svc := NewPostService(store, zerolog.Nop())

	post, err := svc.Create(context.Background(), ports.CreatePostInput{
		AuthorName:    "ana",
		Content:       "cover art",
		Image:         strings.NewReader("png-bytes"),
		ImageFilename: "cover.png",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.ImageCID == "" {
		t.Fatalf("expected image cid on post")
	}
	if len(store.calls) != 2 || store.calls[0] != "pin_file" || store.calls[1] != "pin_json" {
		t.Fatalf("expected image pin before post pin, got %v", store.calls)
	}
}

func TestPostService_Create_ImagePinFails(t *testing.T) {
	store := newStubPinStore()
	store.pinFileErr = domain.ErrUpstream
	svc := NewPostService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreatePostInput{
		AuthorName:    "ana",
		Content:       "cover art",
		Image:         strings.NewReader("png-bytes"),
		ImageFilename: "cover.png",
	})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestPostService_List_SkipsMalformed(t *testing.T) {
	store := newStubPinStore()
	svc := NewPostService(store, zerolog.Nop())

	good, err := svc.Create(context.Background(), ports.CreatePostInput{AuthorName: "ana", Content: "keeper"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// An unreadable entry and a payload with no content, both tagged as posts.
	store.entries = append(store.entries,
		ports.PinEntry{CID: "QmBroken", Keyvalues: map[string]string{"type": "post"}},
		ports.PinEntry{CID: "QmEmpty", Keyvalues: map[string]string{"type": "post"}},
	)
	store.fetchErr["QmBroken"] = domain.ErrRecordNotFound
	store.objects["QmEmpty"] = []byte(`{"author_name":"x"}`)

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].CID != good.CID || posts[0].Content != "keeper" {
		t.Fatalf("unexpected post: %+v", posts[0])
	}
}

func TestPostService_List_FiltersByTag(t *testing.T) {
	store := newStubPinStore()
	svc := NewPostService(store, zerolog.Nop())

	// A user record pinned alongside posts must never show up in the feed.
	_, _ = store.PinJSON(context.Background(), "pintunes-user", map[string]string{"type": "user"}, map[string]string{"username": "ana"})
	_, err := svc.Create(context.Background(), ports.CreatePostInput{AuthorName: "ana", Content: "only me"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].Content != "only me" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestPostService_List_StoreFailure(t *testing.T) {
	store := newStubPinStore()
	store.listErr = domain.ErrUpstream
	svc := NewPostService(store, zerolog.Nop())

	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
