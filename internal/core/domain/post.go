package domain

import "time"

// Post is a single feed entry. It is pinned once at publish time and immutable
// thereafter; the embedded image, when present, is pinned separately and
// referenced by its own CID.
type Post struct {
	CID        string    `json:"cid,omitempty"`
	AuthorCID  string    `json:"author_cid,omitempty"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	ImageCID   string    `json:"image_cid,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
