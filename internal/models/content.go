package models

import "time"

// ContentKind identifies which derived shape a ledger record maps to.
// Records whose type attribute is not one of these values are treated as
// foreign content sharing the collection address and are skipped.
type ContentKind string

const (
	KindProfile ContentKind = "profile"
	KindPost    ContentKind = "post"
	KindReply   ContentKind = "reply"
)

// Valid reports whether k is a recognized content kind.
func (k ContentKind) Valid() bool {
	switch k {
	case KindProfile, KindPost, KindReply:
		return true
	}
	return false
}

// MaxContentLength caps post and reply bodies.
const MaxContentLength = 280

// Entity is implemented by every derived content type. An entity's ID is
// always the ID of the ledger record it was classified from, and entities
// are immutable after classification.
type Entity interface {
	EntityID() string
	Kind() ContentKind
}

// Profile is a user profile derived from a ledger record.
type Profile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Bio          string    `json:"bio"`
	ImageURL     string    `json:"imageUrl"`
	OwnerAddress string    `json:"ownerAddress"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p Profile) EntityID() string  { return p.ID }
func (p Profile) Kind() ContentKind { return KindProfile }

// Post is a top-level piece of content derived from a ledger record.
type Post struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	AuthorAddress string    `json:"authorAddress"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p Post) EntityID() string  { return p.ID }
func (p Post) Kind() ContentKind { return KindPost }

// Reply is a response to a post. A reply whose parent attribute is missing
// is orphaned: it still exists but is invisible in post-detail views.
type Reply struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	AuthorAddress string    `json:"authorAddress"`
	CreatedAt     time.Time `json:"createdAt"`
	ParentPostID  string    `json:"parentPostId"`
}

func (r Reply) EntityID() string  { return r.ID }
func (r Reply) Kind() ContentKind { return KindReply }
