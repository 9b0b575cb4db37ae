// Package content is the application-facing core: classified reads over
// the collection scan and the create pipeline that mints new records.
package content

import (
	"context"
	"sort"
	"time"

	"github.com/mintfeed/mintfeed/internal/cache"
	"github.com/mintfeed/mintfeed/internal/classify"
	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/models"
	"github.com/mintfeed/mintfeed/internal/scanner"
	"github.com/mintfeed/mintfeed/internal/storage"
)

const (
	// DefaultListTTL is how long classified bulk lists stay fresh.
	DefaultListTTL = 60 * time.Second
	// DefaultProfileTTL is how long profile point lookups stay fresh.
	DefaultProfileTTL = 5 * time.Minute
)

// Config holds the service's collection binding and cache policy.
type Config struct {
	Collection string
	ListTTL    time.Duration
	ProfileTTL time.Duration
}

// Service composes the scanner, classifier, cache, and mutation pipeline
// behind the interface the surrounding UI consumes. Reads never fail the
// caller into an unusable state: a timed-out scan yields an empty result
// and loading always completes.
type Service struct {
	collection string
	listTTL    time.Duration
	profileTTL time.Duration

	scanner  *scanner.Scanner
	cache    *cache.Store
	minter   ledger.Minter
	uploader storage.Uploader
	identity ledger.Identity
}

// New wires a content service. The collection address is required; the
// minter, uploader, and identity are only needed for writes and are
// checked when Create runs.
func New(cfg Config, sc *scanner.Scanner, store *cache.Store, minter ledger.Minter, uploader storage.Uploader, identity ledger.Identity) (*Service, error) {
	if cfg.Collection == "" {
		return nil, errors.NotConfigured("collection address")
	}
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = DefaultListTTL
	}
	if cfg.ProfileTTL <= 0 {
		cfg.ProfileTTL = DefaultProfileTTL
	}
	return &Service{
		collection: cfg.Collection,
		listTTL:    cfg.ListTTL,
		profileTTL: cfg.ProfileTTL,
		scanner:    sc,
		cache:      store,
		minter:     minter,
		uploader:   uploader,
		identity:   identity,
	}, nil
}

// ListContent returns every entity of the given kind in the collection.
// Posts and profiles are ordered newest-first, replies oldest-first. A
// timed-out scan returns an empty list rather than an error.
func (s *Service) ListContent(ctx context.Context, kind models.ContentKind) ([]models.Entity, error) {
	if !kind.Valid() {
		return nil, errors.BadRequest("unknown content kind")
	}

	key := cache.ListKey(s.collection, kind)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]models.Entity), nil
	}

	records, err := s.scanner.Scan(ctx, s.collection)
	if err != nil {
		if errors.IsCode(err, errors.ErrScanTimedOut) {
			// Soft failure: keep the UI interactive, do not cache.
			return []models.Entity{}, nil
		}
		return nil, err
	}

	entities := classifyKind(records, kind)
	s.cache.Put(key, entities, s.listTTL)
	return entities, nil
}

// Posts returns all posts, newest first.
func (s *Service) Posts(ctx context.Context) ([]models.Post, error) {
	entities, err := s.ListContent(ctx, models.KindPost)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(entities))
	for _, e := range entities {
		posts = append(posts, e.(models.Post))
	}
	return posts, nil
}

// PostsByAuthor returns one author's posts, newest first.
func (s *Service) PostsByAuthor(ctx context.Context, author string) ([]models.Post, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.AuthorAddress == author {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Post returns a single post by record ID.
func (s *Service) Post(ctx context.Context, id string) (*models.Post, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.NotFound("post")
}

// Replies returns the replies to a post, oldest first. Orphaned replies
// (no parent attribute) are never visible here.
func (s *Service) Replies(ctx context.Context, postID string) ([]models.Reply, error) {
	entities, err := s.ListContent(ctx, models.KindReply)
	if err != nil {
		return nil, err
	}
	replies := make([]models.Reply, 0, len(entities))
	for _, e := range entities {
		r := e.(models.Reply)
		if r.ParentPostID == postID {
			replies = append(replies, r)
		}
	}
	return replies, nil
}

// Profile returns the profile owned by the given wallet address, or nil if
// none exists. When the ledger holds several profile records for one owner
// the most recent by timestamp attribute wins, independent of scan order.
func (s *Service) Profile(ctx context.Context, owner string) (*models.Profile, error) {
	if owner == "" {
		return nil, errors.BadRequest("owner address is required")
	}

	key := cache.ProfileKey(owner)
	if cached, ok := s.cache.Get(key); ok {
		p := cached.(models.Profile)
		return &p, nil
	}

	entities, err := s.ListContent(ctx, models.KindProfile)
	if err != nil {
		return nil, err
	}

	var found *models.Profile
	for _, e := range entities {
		p := e.(models.Profile)
		if p.OwnerAddress != owner {
			continue
		}
		if found == nil || p.CreatedAt.After(found.CreatedAt) {
			found = &p
		}
	}
	if found == nil {
		return nil, nil
	}

	s.cache.Put(key, *found, s.profileTTL)
	return found, nil
}

// classifyKind classifies a raw scan and keeps entities of one kind,
// sorted for presentation. Unrecognized records are dropped silently.
func classifyKind(records []ledger.ContentRecord, kind models.ContentKind) []models.Entity {
	entities := make([]models.Entity, 0, len(records))
	for _, r := range records {
		entity, ok := classify.Classify(r)
		if !ok || entity.Kind() != kind {
			continue
		}
		entities = append(entities, entity)
	}

	oldestFirst := kind == models.KindReply
	sort.SliceStable(entities, func(i, j int) bool {
		ti, tj := createdAt(entities[i]), createdAt(entities[j])
		if oldestFirst {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})
	return entities
}

func createdAt(e models.Entity) time.Time {
	switch v := e.(type) {
	case models.Profile:
		return v.CreatedAt
	case models.Post:
		return v.CreatedAt
	case models.Reply:
		return v.CreatedAt
	}
	return time.Time{}
}
